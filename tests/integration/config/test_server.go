//go:build integration
// +build integration

package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	appcfg "user-console/internal/config"
	"user-console/internal/server"
	"user-console/pkg/logger"
)

// Тестовые учётные данные оператора, которые принимает заглушка сервиса сессий.
const (
	OperatorEmail    = "admin@console.dev"
	OperatorPassword = "admin123"
)

// NewTestRouter создает новый экземпляр gin.Engine для интеграционных тестов.
// Вместо настоящих сервисов каталога и сессий поднимается локальная заглушка,
// её адрес подставляется в конфигурацию через переменные окружения.
func NewTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	upstream := newUpstream()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	t.Setenv("DIRECTORY_BASE_URL", srv.URL)
	t.Setenv("SESSION_BASE_URL", srv.URL)
	t.Setenv("APP_ENV", "development")

	cfg, err := appcfg.Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}

	return server.NewServer(cfg, logger.Default()).GetRouter()
}

// upstream — заглушка внешних сервисов: каталог пользователей в памяти
// плюс сервис сессий с одним фиксированным оператором.
type upstream struct {
	mux *http.ServeMux

	mu    sync.Mutex
	users map[string]map[string]any
	seq   int
}

func newUpstream() *upstream {
	u := &upstream{
		mux:   http.NewServeMux(),
		users: make(map[string]map[string]any),
	}

	u.mux.HandleFunc("POST /v1/auth/login", u.login)
	u.mux.HandleFunc("GET /v1/auth/me", u.me)
	u.mux.HandleFunc("GET /v1/users", u.list)
	u.mux.HandleFunc("POST /v1/users", u.create)
	u.mux.HandleFunc("GET /v1/users/{id}", u.get)
	u.mux.HandleFunc("PATCH /v1/users/{id}", u.patch)
	u.mux.HandleFunc("DELETE /v1/users/{id}", u.delete)

	return u
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mux.ServeHTTP(w, r)
}

func (u *upstream) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&creds)

	if creds.Email != OperatorEmail || creds.Password != OperatorPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Неверный логин или пароль"})
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "sid", Value: "test-session"})
	w.WriteHeader(http.StatusOK)
}

func (u *upstream) me(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie("sid"); err != nil || ck.Value != "test-session" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Сессия не найдена"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": "op-1", "email": OperatorEmail})
}

func (u *upstream) list(w http.ResponseWriter, _ *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]map[string]any, 0, len(u.users))
	for _, rec := range u.users {
		out = append(out, rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (u *upstream) create(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Некорректное тело запроса"})
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// Повторяющийся email каталог отвергает, как и настоящий сервис.
	for _, rec := range u.users {
		if rec["email"] == payload["email"] {
			writeJSON(w, http.StatusConflict, map[string]any{"message": "Email уже занят"})
			return
		}
	}

	u.seq++
	rec := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		if k == "password" {
			continue
		}
		rec[k] = v
	}
	rec["id"] = fmt.Sprintf("u-%d", u.seq)
	u.users[rec["id"].(string)] = rec

	writeJSON(w, http.StatusCreated, rec)
}

func (u *upstream) get(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	rec, ok := u.users[r.PathValue("id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Пользователь не найден"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (u *upstream) patch(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Некорректное тело запроса"})
		return
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	rec, ok := u.users[r.PathValue("id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Пользователь не найден"})
		return
	}
	for k, v := range payload {
		if k == "password" {
			continue
		}
		rec[k] = v
	}
	writeJSON(w, http.StatusOK, rec)
}

func (u *upstream) delete(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id := r.PathValue("id")
	if _, ok := u.users[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Пользователь не найден"})
		return
	}
	delete(u.users, id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Login выполняет вход тестового оператора и возвращает access-токен консоли.
func Login(t *testing.T, router *gin.Engine) string {
	t.Helper()

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, OperatorEmail, OperatorPassword)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login failed: status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login response: %v", err)
	}
	return resp.AccessToken
}
