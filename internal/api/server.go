package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"argus-monitor-go/internal/api/handlers"
	"argus-monitor-go/internal/config"
	"argus-monitor-go/internal/logstore"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	server *http.Server

	healthHandler    *handlers.HealthHandler
	logsHandler      *handlers.LogsHandler
	dashboardHandler *handlers.DashboardHandler
}

func NewServer(cfg *config.Config, store *logstore.Store) *Server {
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		config:           cfg,
		router:           gin.New(),
		healthHandler:    handlers.NewHealthHandler(cfg.MonitorID, cfg.Version),
		logsHandler:      handlers.NewLogsHandler(store),
		dashboardHandler: handlers.NewDashboardHandler(),
	}
}

func (s *Server) Setup() {
	s.setupMiddleware()

	s.setupRoutes()

	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}
}

func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
