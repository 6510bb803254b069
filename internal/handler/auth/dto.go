package auth

// LoginRequest описывает тело запроса логина.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IdentityResponse описывает аутентифицированную личность оператора.
type IdentityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse — ответ при успешной аутентификации: консольный access-токен
// и личность, подтверждённая сервисом сессий.
type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	User        IdentityResponse `json:"user"`
}
