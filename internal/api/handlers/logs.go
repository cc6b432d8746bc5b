package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"argus-monitor-go/internal/logstore"
)

type LogsHandler struct {
	store *logstore.Store
}

func NewLogsHandler(store *logstore.Store) *LogsHandler {
	return &LogsHandler{store: store}
}

// ListLogs godoc
// @Summary List analysis logs
// @Description Get the rolling log of frame descriptions, oldest first
// @Tags logs
// @Produce json
// @Success 200 {array} models.LogEntry
// @Router /logs [get]
func (h *LogsHandler) ListLogs(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}
