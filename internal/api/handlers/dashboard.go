package handlers

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed dashboard.html
var dashboardHTML []byte

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Dashboard godoc
// @Summary Monitoring dashboard
// @Description Static dashboard page polling /logs every 5 seconds
// @Tags dashboard
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", dashboardHTML)
}
