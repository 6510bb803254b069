package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	domain "user-console/internal/domain/user"
)

// unauthorizedError — сервис сессий отверг учётные данные или сессию.
type unauthorizedError struct {
	message string
}

func (e *unauthorizedError) Error() string {
	if e.message != "" {
		return "session: " + e.message
	}
	return "session: unauthorized"
}

// ServerMessage возвращает сообщение сервера для отображения оператору.
func (e *unauthorizedError) ServerMessage() string { return e.message }

// IsUnauthorized возвращает true, если ошибка означает отказ в аутентификации.
func IsUnauthorized(err error) bool {
	var ue *unauthorizedError
	return errors.As(err, &ue)
}

// credentials — проводной формат запроса логина.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// errorBody — тело ошибки сервиса сессий, формат {message}.
type errorBody struct {
	Message string `json:"message"`
}

// Client — HTTP-клиент сервиса сессий. Консоль не реализует аутентификацию
// сама: логин проксируется во внешний сервис, обратно приходит только
// аутентифицированная личность.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиент сервиса сессий для заданного базового URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Login аутентифицирует оператора: POST /v1/auth/login с учётными данными,
// затем GET /v1/auth/me с куками из ответа логина — та же последовательность,
// что и у исходного клиента.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	body, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("сериализация учётных данных: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("создание запроса логина: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос логина: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, authError(resp)
	}

	// Сессионные куки из ответа логина сопровождают запрос текущей личности.
	return c.me(ctx, resp.Cookies())
}

// Me возвращает текущую аутентифицированную личность по сессионным кукам.
func (c *Client) Me(ctx context.Context, cookies []*http.Cookie) (*domain.Identity, error) {
	return c.me(ctx, cookies)
}

func (c *Client) me(ctx context.Context, cookies []*http.Cookie) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("создание запроса текущей личности: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос текущей личности: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, authError(resp)
	}

	var id domain.Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("разбор ответа текущей личности: %w", err)
	}
	return &id, nil
}

// authError переводит неуспешный ответ сервиса сессий в ошибку с сообщением
// сервера, если оно есть.
func authError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	return &unauthorizedError{message: eb.Message}
}
