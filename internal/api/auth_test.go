package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/ada/backend/internal/middleware"
	"github.com/pageza/ada/backend/internal/service"
)

func TestRegister(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Ayşe",
		"email":    "ayse@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeJSON[AuthResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ayse@example.com", resp.Session.User.Email)
	assert.Nil(t, resp.Session.Profile)
	assert.Nil(t, resp.Session.Plan)
	assert.NotContains(t, w.Body.String(), "secret123")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.register(t, "ayse@example.com")

	w := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Başka",
		"email":    "ayse@example.com",
		"password": "another1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	resp := decodeJSON[middleware.ErrorResponse](t, w)
	assert.Equal(t, service.MsgDuplicateEmail, resp.Error)
}

func TestRegisterInvalidBody(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing name", body: map[string]string{"email": "a@x.com", "password": "secret123"}},
		{name: "missing email", body: map[string]string{"name": "A", "password": "secret123"}},
		{name: "missing password", body: map[string]string{"name": "A", "email": "a@x.com"}},
		{name: "blank name", body: map[string]string{"name": "  ", "email": "a@x.com", "password": "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterThenLoginWithShortPassword(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Ayşe",
		"email":    "a@x.com",
		"password": "p1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "p1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "a@x.com", decodeJSON[AuthResponse](t, w).Session.User.Email)
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	ts.register(t, "ayse@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		status   int
	}{
		{name: "valid credentials", email: "ayse@example.com", password: "secret123", status: http.StatusOK},
		{name: "wrong password", email: "ayse@example.com", password: "wrong-one", status: http.StatusUnauthorized},
		{name: "unknown email", email: "nobody@example.com", password: "secret123", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			})
			assert.Equal(t, tt.status, w.Code)

			if tt.status == http.StatusOK {
				resp := decodeJSON[AuthResponse](t, w)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, tt.email, resp.Session.User.Email)
			} else {
				resp := decodeJSON[middleware.ErrorResponse](t, w)
				assert.Equal(t, service.MsgInvalidCredentials, resp.Error)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.register(t, "ayse@example.com")

	w := ts.do(t, http.MethodGet, "/api/v1/session", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := setupTestServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/session"},
		{http.MethodPut, "/api/v1/profile"},
		{http.MethodGet, "/api/v1/plan"},
		{http.MethodPost, "/api/v1/plan/regenerate"},
		{http.MethodGet, "/api/v1/weight"},
		{http.MethodGet, "/api/v1/stores"},
		{http.MethodDelete, "/api/v1/reset"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := ts.do(t, r.method, r.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
