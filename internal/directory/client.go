package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domain "user-console/internal/domain/user"
	"user-console/internal/form"
)

// APIError — ошибка операции каталога. Тела ошибок потребляются единообразно
// как {message}; отсутствие message оставляет Message пустым, резервный текст
// подставляет вызывающая сторона (у каждой операции он свой).
type APIError struct {
	Op      string // операция каталога: list, get, create, update, delete
	Status  int    // HTTP-статус ответа
	Message string // сообщение из тела ошибки, если сервер его прислал
}

// Error реализует error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("directory %s: status=%d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("directory %s: status=%d", e.Op, e.Status)
}

// ServerMessage возвращает сообщение сервера для отображения оператору.
func (e *APIError) ServerMessage() string { return e.Message }

// errorBody — проводной формат тела ошибки каталога.
type errorBody struct {
	Message string `json:"message"`
}

// Client — HTTP-клиент сервиса каталога пользователей.
// Реализует form.DirectoryService.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиент каталога для заданного базового URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List возвращает все записи каталога.
func (c *Client) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	if err := c.do(ctx, "list", http.MethodGet, "/v1/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get возвращает одну запись каталога по идентификатору
// (дата рождения приходит ISO-8601 строкой).
func (c *Client) Get(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, "get", http.MethodGet, "/v1/users/"+id, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser создаёт запись каталога из полной нагрузки формы.
func (c *Client) CreateUser(ctx context.Context, payload form.Payload) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, "create", http.MethodPost, "/v1/users", payload, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser частично обновляет запись каталога разреженной нагрузкой.
// Идентификатор — параметр пути, в тело он не входит.
func (c *Client) UpdateUser(ctx context.Context, id string, payload form.Payload) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, "update", http.MethodPatch, "/v1/users/"+id, payload, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser удаляет запись каталога. Тело ответа отсутствует.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, "/v1/users/"+id, nil, nil)
}

// Ping проверяет доступность каталога (для health-check).
func (c *Client) Ping(ctx context.Context) error {
	var users []*domain.User
	return c.do(ctx, "list", http.MethodGet, "/v1/users", nil, &users)
}

// do выполняет запрос к каталогу и раскладывает ответ: успешное тело — в out,
// тело ошибки — в APIError с сообщением сервера, если оно есть.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("сериализация тела запроса %s: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("создание запроса %s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("запрос %s к каталогу: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: op, Status: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("разбор ответа %s: %w", op, err)
	}
	return nil
}
