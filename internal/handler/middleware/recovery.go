package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-console/internal/handler/response"
	"user-console/pkg/logger"
)

// Recovery middleware для обработки паник и предотвращения краша приложения
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		// Логируем панику с контекстом запроса
		log.Error("паника перехвачена", map[string]any{
			"panic":      recovered,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(ContextRequestIDKey),
		})

		response.Error(c, http.StatusInternalServerError, "internal_error",
			"Внутренняя ошибка сервера", nil)
	})
}
