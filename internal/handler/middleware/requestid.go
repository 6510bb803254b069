package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestIDKey — ключ идентификатора запроса в контексте Gin.
const ContextRequestIDKey = "requestID"

// HeaderRequestID — заголовок, в котором идентификатор запроса принимается
// от клиента и возвращается в ответе.
const HeaderRequestID = "X-Request-ID"

// RequestID присваивает каждому запросу идентификатор: берёт клиентский из
// заголовка или генерирует новый. Идентификатор попадает в контекст (для
// логирования) и в заголовок ответа.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}
