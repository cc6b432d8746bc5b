package api

func (s *Server) setupRoutes() {
	s.router.GET("/", s.dashboardHandler.Dashboard)
	s.router.GET("/logs", s.logsHandler.ListLogs)
	s.router.GET("/health", s.healthHandler.HealthCheck)
}
