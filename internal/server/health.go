package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/relay"
	"github.com/kode4food/relay/pkg/api"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Service: relay.Name,
		Version: relay.Version,
		Status:  api.HealthStatusOK,
	})
}
