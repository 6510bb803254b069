package directory_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"user-console/internal/directory"
	"user-console/internal/form"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *directory.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return directory.NewClient(srv.URL, 2*time.Second)
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"u-1","name":"Ivan"},{"id":"u-2","name":"Пётр"}]`))
	})

	users, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "u-1", users[0].ID)
	require.Equal(t, "Пётр", users[1].Name)
}

func TestClient_Get(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/users/u-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u-1","name":"Ivan","birthDate":"1990-05-17T00:00:00.000Z"}`))
	})

	u, err := c.Get(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, "u-1", u.ID)
	require.NotNil(t, u.BirthDate)
	require.Equal(t, "1990-05-17T00:00:00.000Z", *u.BirthDate)
}

func TestClient_CreateUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/users", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Ivan", body["name"])
		require.NotContains(t, body, "confirmPassword")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"new-id","name":"Ivan"}`))
	})

	u, err := c.CreateUser(context.Background(), form.Payload{"name": "Ivan"})
	require.NoError(t, err)
	require.Equal(t, "new-id", u.ID)
}

func TestClient_UpdateUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/v1/users/u-1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// Идентификатор передаётся путём, в теле только дифф.
		require.NotContains(t, body, "id")
		require.Equal(t, "+79991111111", body["telephone"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u-1","telephone":"+79991111111"}`))
	})

	u, err := c.UpdateUser(context.Background(), "u-1", form.Payload{"telephone": "+79991111111"})
	require.NoError(t, err)
	require.Equal(t, "u-1", u.ID)
}

func TestClient_DeleteUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/v1/users/u-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteUser(context.Background(), "u-1"))
}

func TestClient_ErrorWithServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Email уже занят"}`))
	})

	_, err := c.CreateUser(context.Background(), form.Payload{"name": "Ivan"})
	require.Error(t, err)

	var apiErr *directory.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "create", apiErr.Op)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "Email уже занят", apiErr.ServerMessage())

	// Резервный текст операции подставляется поверх пустого сообщения.
	require.Equal(t, "Email уже занят", form.ServerMessage(err, form.FallbackCreateMsg))
}

func TestClient_ErrorWithoutMessageUsesFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`oops`))
	})

	_, err := c.CreateUser(context.Background(), form.Payload{"name": "Ivan"})
	require.Error(t, err)

	var apiErr *directory.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "", apiErr.ServerMessage())
	require.Equal(t, form.FallbackCreateMsg, form.ServerMessage(err, form.FallbackCreateMsg))
}

func TestClient_Ping(t *testing.T) {
	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	require.Error(t, down.Ping(context.Background()))

	up := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	require.NoError(t, up.Ping(context.Background()))
}
