package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	MonitorID string
	Version   string
}

func NewHealthHandler(monitorID, version string) *HealthHandler {
	return &HealthHandler{MonitorID: monitorID, Version: version}
}

type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	MonitorID string `json:"monitor_id" example:"monitor-1"`
	Version   string `json:"version" example:"1.0.0"`
}

// HealthCheck godoc
// @Summary Health check
// @Description Check if the monitor is healthy and responsive
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		MonitorID: h.MonitorID,
		Version:   h.Version,
	})
}
