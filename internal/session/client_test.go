package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"user-console/internal/session"
)

func TestClient_LoginHappyPath(t *testing.T) {
	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			require.Equal(t, http.MethodPost, r.Method)

			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			require.Equal(t, "a@b.com", creds["email"])
			require.Equal(t, "secret", creds["password"])

			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "session-token"})
			w.WriteHeader(http.StatusOK)
		case "/v1/auth/me":
			require.Equal(t, http.MethodGet, r.Method)
			// Личность выдаётся только по куке из ответа логина.
			ck, err := r.Cookie("sid")
			require.NoError(t, err)
			require.Equal(t, "session-token", ck.Value)
			sawCookie = true

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"op-1","email":"a@b.com"}`))
		default:
			t.Fatalf("неожиданный путь: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := session.NewClient(srv.URL, 2*time.Second)
	id, err := c.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.True(t, sawCookie)
	require.Equal(t, "op-1", id.ID)
	require.Equal(t, "a@b.com", id.Email)
}

func TestClient_LoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Неверный логин или пароль"}`))
	}))
	defer srv.Close()

	c := session.NewClient(srv.URL, 2*time.Second)
	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	require.True(t, session.IsUnauthorized(err))
	require.Contains(t, err.Error(), "Неверный логин или пароль")
}

func TestClient_MeWithCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/me", r.URL.Path)
		if _, err := r.Cookie("sid"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"op-1","email":"a@b.com"}`))
	}))
	defer srv.Close()

	c := session.NewClient(srv.URL, 2*time.Second)

	// Без кук сессии — отказ.
	_, err := c.Me(context.Background(), nil)
	require.True(t, session.IsUnauthorized(err))

	id, err := c.Me(context.Background(), []*http.Cookie{{Name: "sid", Value: "session-token"}})
	require.NoError(t, err)
	require.Equal(t, "op-1", id.ID)
}
