package api

import (
	"net/http"

	_ "argus-monitor-go/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (s *Server) setupSwagger() {
	s.router.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":       "Argus Monitor API",
			"version":     s.config.Version,
			"description": "CCTV surveillance monitor exposing a rolling log of frame descriptions",
			"swagger_ui":  "/docs/index.html",
			"endpoints": gin.H{
				"dashboard": "/",
				"logs":      "/logs",
				"health":    "/health",
			},
			"monitor_id": s.config.MonitorID,
			"port":       s.config.Port,
		})
	})

	s.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
}
