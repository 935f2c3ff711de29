package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/relay/pkg/api"
	"github.com/kode4food/relay/pkg/log"
)

const jsonContentType = "application/json; charset=utf-8"

var (
	// ErrLoadWorkflow is returned when the workflow definition cannot be read
	ErrLoadWorkflow = errors.New("failed to load workflow")
)

func (s *Server) getWorkflow(c *gin.Context) {
	def, err := s.engine.LoadDefinition(c.Request.Context())
	if err != nil {
		slog.Warn("Workflow unavailable", log.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error:  fmt.Sprintf("%s: %v", ErrLoadWorkflow, err),
			Status: http.StatusInternalServerError,
		})
		return
	}

	c.Data(http.StatusOK, jsonContentType, def.Document)
}

func (s *Server) runWorkflow(c *gin.Context) {
	env := s.engine.Run(c.Request.Context())
	if env.Failed() {
		c.JSON(http.StatusInternalServerError, env)
		return
	}
	c.JSON(http.StatusOK, env)
}
