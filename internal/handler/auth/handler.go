package auth

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "user-console/internal/domain/user"
	"user-console/internal/handler/middleware"
	"user-console/internal/handler/response"
	"user-console/internal/session"
	jwtsvc "user-console/pkg/jwt"
)

// Sessions — операции сервиса сессий, которые использует handler.
type Sessions interface {
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
}

// Handler обрабатывает HTTP-запросы, связанные с аутентификацией оператора.
// Проверку учётных данных выполняет внешний сервис сессий; консоль лишь
// выпускает свой короткоживущий access-токен для подтверждённой личности.
type Handler struct {
	sessions Sessions
	jwt      jwtsvc.Service
}

// NewHandler создаёт новый AuthHandler.
func NewHandler(sessions Sessions, jwt jwtsvc.Service) *Handler {
	return &Handler{sessions: sessions, jwt: jwt}
}

// Login обрабатывает вход оператора по email/паролю.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "Некорректное тело запроса", err.Error())
		return
	}

	identity, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if session.IsUnauthorized(err) {
			// Не раскрываем, что именно неверно
			response.Error(c, http.StatusUnauthorized, "invalid_credentials", "Неверный email или пароль", nil)
			return
		}
		log.Printf("session service error in Login: email=%s err=%v", req.Email, err)
		response.Error(c, http.StatusBadGateway, "session_unavailable", "Сервис аутентификации недоступен", nil)
		return
	}

	access, err := h.jwt.GenerateAccessToken(identity)
	if err != nil {
		log.Printf("error generating access token in Login: user_id=%s err=%v", identity.ID, err)
		response.Error(c, http.StatusInternalServerError, "internal_error", "Внутренняя ошибка сервера", nil)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: access,
		User: IdentityResponse{
			ID:    identity.ID,
			Email: identity.Email,
		},
	})
}

// Me возвращает личность текущего аутентифицированного оператора
// из клеймов консольного токена.
func (h *Handler) Me(c *gin.Context) {
	id := c.GetString(middleware.ContextUserIDKey)
	if id == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", "Требуется аутентификация", nil)
		return
	}

	c.JSON(http.StatusOK, IdentityResponse{
		ID:    id,
		Email: c.GetString(middleware.ContextUserEmailKey),
	})
}
