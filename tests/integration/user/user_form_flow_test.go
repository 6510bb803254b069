//go:build integration
// +build integration

package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	testcfg "user-console/tests/integration/config"
)

// TestUser_Form_Flow проверяет сценарий:
// login -> create -> list -> get -> patch -> delete -> get (404).
func TestUser_Form_Flow(t *testing.T) {
	router := testcfg.NewTestRouter(t)
	access := testcfg.Login(t, router)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+access)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		router.ServeHTTP(w, req)
		return w
	}

	// 1. Создание записи через движок формы
	createBody := `{
		"name": "Ivan",
		"surName": "Petrov",
		"email": "ivan@example.com",
		"password": "secret",
		"confirmPassword": "secret",
		"birthDate": "1990-05-17",
		"telephone": "+79991234567",
		"employment": "intern",
		"userAgreement": true
	}`
	w := do(http.MethodPost, "/api/v1/users", createBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)
	// Производное полное имя и проводной формат даты — результат движка формы.
	require.Equal(t, "Ivan Petrov", created["fullName"])
	require.Equal(t, "1990-05-17T00:00:00Z", created["birthDate"])
	require.NotContains(t, created, "password")

	// 2. Список записей
	w = do(http.MethodGet, "/api/v1/users", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// 3. Одна запись (снимок для формы редактирования)
	w = do(http.MethodGet, "/api/v1/users/"+id, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 4. Частичное обновление: меняется только телефон
	w = do(http.MethodPatch, "/api/v1/users/"+id, `{"telephone":"+79990000000"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "+79990000000", updated["telephone"])
	require.Equal(t, "Ivan Petrov", updated["fullName"])

	// 5. Повтор того же значения — сохранять нечего
	w = do(http.MethodPatch, "/api/v1/users/"+id, `{"telephone":"+79990000000"}`)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// 6. Удаление без подтверждения отклоняется
	w = do(http.MethodDelete, "/api/v1/users/"+id, "")
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// 7. Удаление с подтверждением
	w = do(http.MethodDelete, "/api/v1/users/"+id+"?confirm=true", "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	// 8. Запись исчезла
	w = do(http.MethodGet, "/api/v1/users/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

// TestUser_Create_ValidationAndConflict проверяет ошибки валидации формы
// и конфликт каталога при повторном email.
func TestUser_Create_ValidationAndConflict(t *testing.T) {
	router := testcfg.NewTestRouter(t)
	access := testcfg.Login(t, router)

	do := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+access)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	// Невалидная форма — 422 со всеми ошибками по полям.
	w := do(`{"email":"not-an-email"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), "Неверный email")
	require.Contains(t, w.Body.String(), "Имя обязательно")

	valid := `{
		"name": "Ivan",
		"surName": "Petrov",
		"email": "dup@example.com",
		"password": "secret",
		"confirmPassword": "secret",
		"employment": "fulltime",
		"userAgreement": true
	}`
	require.Equal(t, http.StatusCreated, do(valid).Code)

	// Повторный email — конфликт каталога с серверным сообщением.
	w = do(valid)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), "Email уже занят")
}

// TestUser_RoutesRequireAuth проверяет, что записи пользователей недоступны
// без консольного access-токена.
func TestUser_RoutesRequireAuth(t *testing.T) {
	router := testcfg.NewTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
}
