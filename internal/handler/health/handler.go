package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger проверяет доступность внешнего сервиса.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает health-check эндпоинты консоли.
type Handler struct {
	directory Pinger
	appEnv    string
}

// NewHandler создаёт новый HealthHandler.
func NewHandler(directory Pinger, appEnv string) *Handler {
	return &Handler{directory: directory, appEnv: appEnv}
}

// Health — базовый health-check сервера (жив ли процесс).
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"env":    h.appEnv,
	})
}

// HealthDirectory — проверка доступности сервиса каталога пользователей.
func (h *Handler) HealthDirectory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.directory.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
