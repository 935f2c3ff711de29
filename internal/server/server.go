package server

import (
	"log/slog"
	"net/http"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"

	"github.com/kode4food/relay/internal/engine"
)

// Server implements the HTTP API server for the workflow runner
type Server struct {
	engine *engine.Engine
}

// NewServer creates a new HTTP API server
func NewServer(eng *engine.Engine) *Server {
	return &Server{
		engine: eng,
	}
}

// SetupRoutes configures and returns the HTTP router with all API endpoints
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return slog.Default()
		}),
	))
	router.Use(cors)

	router.GET("/health", s.handleHealth)
	router.GET("/workflow", s.getWorkflow)
	router.POST("/run", s.runWorkflow)

	return router
}

func cors(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set(
		"Access-Control-Allow-Methods", "GET, POST, OPTIONS",
	)
	c.Writer.Header().Set(
		"Access-Control-Allow-Headers", "Content-Type, Authorization",
	)

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusOK)
		return
	}

	c.Next()
}
