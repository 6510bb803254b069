package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody описывает стандартный формат ошибки API.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error отправляет JSON-ответ с ошибкой в едином формате.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// ValidationError отправляет 422 с отображением поле → сообщение об ошибке,
// которое возвращает схема валидации формы. Клиент показывает все ошибки
// одновременно, по одной под каждым полем.
func ValidationError(c *gin.Context, fieldErrors map[string]string) {
	Error(c, http.StatusUnprocessableEntity, "validation_failed",
		"Форма заполнена некорректно", fieldErrors)
}
