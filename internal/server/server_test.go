package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk-dev/clientdesk/internal/config"
)

// newTestServer builds a server over a fresh in-memory database, one per test
func newTestServer(t *testing.T) *Server {
	t.Helper()

	dbName := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := &config.Config{
		HTTP:     config.HTTPConfig{Address: ":0"},
		Database: config.DatabaseConfig{URL: fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)},
		Auth:     config.AuthConfig{JWTSecret: "test-secret", TokenTTL: "1h"},
		Logging:  config.LoggingConfig{Level: "error", Format: "console"},
	}

	srv, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)

	return srv
}

// doJSON performs a request against the server's handler and returns the recorder
func doJSON(t *testing.T, srv *Server, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, req)

	return recorder
}

// decodeJSON unmarshals a recorder body into out
func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), out))
}

// registerAndLogin creates an account and returns its token and user ID
func registerAndLogin(t *testing.T, srv *Server, username string) (token, userID string) {
	t.Helper()

	recorder := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"userName": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = doJSON(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"userName": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var resp LoginResponse
	decodeJSON(t, recorder, &resp)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.UserID)

	return resp.Token, resp.UserID
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	recorder := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp map[string]interface{}
	decodeJSON(t, recorder, &resp)
	require.Equal(t, "online", resp["status"])
	require.Equal(t, "clientdesk-api", resp["service"])
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	recorder := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"), "every response should carry a request ID")
}
