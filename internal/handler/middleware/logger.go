package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"user-console/pkg/logger"
)

// LoggerStructured возвращает middleware структурированного логирования
// HTTP-запросов.
func LoggerStructured(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Начало запроса
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Обрабатываем запрос
		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := map[string]any{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(ContextRequestIDKey),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields["errors"] = errs
		}

		if c.Writer.Status() >= 500 {
			log.Error("запрос завершился ошибкой сервера", fields)
			return
		}
		log.Info("запрос обработан", fields)
	}
}
