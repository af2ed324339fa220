package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct{}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

// HandleGetStatus godoc
// @Summary      Health probe
// @Tags         status
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /status [get]
func (h *StatusHandler) HandleGetStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
