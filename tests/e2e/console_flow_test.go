package e2e

import (
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/clientdesk-dev/clientdesk/internal/cli/api"
	"github.com/clientdesk-dev/clientdesk/internal/cli/credstore"
	"github.com/clientdesk-dev/clientdesk/internal/cli/session"
	"github.com/clientdesk-dev/clientdesk/internal/config"
	"github.com/clientdesk-dev/clientdesk/internal/server"
)

// consoleStack is the full client-side wiring as the commands build it,
// pointed at an in-process server
type consoleStack struct {
	store    *credstore.Store
	provider *session.Provider
	records  *api.Client
	baseURL  string
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	dbName := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := &config.Config{
		HTTP:     config.HTTPConfig{Address: ":0"},
		Database: config.DatabaseConfig{URL: fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)},
		Auth:     config.AuthConfig{JWTSecret: "e2e-secret", TokenTTL: "1h"},
		Logging:  config.LoggingConfig{Level: "error", Format: "console"},
	}

	srv, err := server.New(cfg, zerolog.Nop(), "e2e")
	require.NoError(t, err)

	httpServer := httptest.NewServer(srv.Handler())
	t.Cleanup(httpServer.Close)

	return httpServer
}

// newConsoleStack wires store, gateway, provider and records client exactly
// the way the commands do, but over file backends in a temp directory
func newConsoleStack(t *testing.T, baseURL string, dir string) *consoleStack {
	t.Helper()

	log := zerolog.Nop()
	store := credstore.New(
		credstore.NewFileBackend(filepath.Join(dir, "durable.json")),
		credstore.NewFileBackend(filepath.Join(dir, "ephemeral.json")),
		log,
	)
	gateway := api.NewAuthGateway(baseURL, log)
	provider := session.NewProvider(store, gateway, log)
	records := api.NewClient(baseURL, api.NewHTTPClient(provider), log)

	return &consoleStack{
		store:    store,
		provider: provider,
		records:  records,
		baseURL:  baseURL,
	}
}

func TestConsoleFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	httpServer := startServer(t)
	dir := t.TempDir()
	stack := newConsoleStack(t, httpServer.URL, dir)
	ctx := context.Background()

	var clientID string

	t.Run("Register", func(t *testing.T) {
		err := stack.provider.Register(ctx, api.RegisterCredentials{
			Username: "carmen",
			Email:    "carmen@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		// Registration must not authenticate
		require.False(t, stack.provider.Current().Authenticated)
	})

	t.Run("LoginWithRemember", func(t *testing.T) {
		sess, err := stack.provider.Login(ctx, api.LoginCredentials{
			Username: "carmen",
			Password: "password123",
		}, true)
		require.NoError(t, err)

		require.True(t, sess.Authenticated)
		require.NotEmpty(t, sess.Token)
		require.Equal(t, "carmen", sess.User.Username)

		// Credentials landed in storage under the remember scope
		token, ok := stack.store.Token()
		require.True(t, ok)
		require.Equal(t, sess.Token, token)
		require.True(t, stack.store.Remembered())
	})

	t.Run("WrongCredentialsAreRejected", func(t *testing.T) {
		_, err := stack.provider.Login(ctx, api.LoginCredentials{
			Username: "carmen",
			Password: "not-the-password",
		}, false)

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, api.KindRejected, apiErr.Kind)

		// The failed attempt must not clobber the live session
		require.True(t, stack.provider.Current().Authenticated)
	})

	t.Run("CreateClient", func(t *testing.T) {
		created, err := stack.records.Create(ctx, api.ClientRecord{
			FirstName:      "Ana",
			LastName:       "García",
			Identification: "11-2233-444",
			Cellphone:      "+506 8888-1234",
			Gender:         "F",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		require.NotEmpty(t, created.InterestID, "server should assign the default interest")

		clientID = created.ID
	})

	t.Run("SearchFindsClient", func(t *testing.T) {
		summaries, err := stack.records.Search(ctx, "García")
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		require.Equal(t, clientID, summaries[0].ID)

		summaries, err = stack.records.Search(ctx, "nobody")
		require.NoError(t, err)
		require.Empty(t, summaries)
	})

	t.Run("UpdateClient", func(t *testing.T) {
		record, err := stack.records.Get(ctx, clientID)
		require.NoError(t, err)

		record.PersonalNote = "prefers email"
		updated, err := stack.records.Update(ctx, *record)
		require.NoError(t, err)
		require.Equal(t, "prefers email", updated.PersonalNote)
	})

	t.Run("SessionSurvivesRestart", func(t *testing.T) {
		// A second stack over the same storage directory simulates a new
		// process start
		restarted := newConsoleStack(t, httpServer.URL, dir)

		sess := restarted.provider.Current()
		require.True(t, sess.Authenticated, "remembered session should be restored")
		require.Equal(t, "carmen", sess.User.Username)

		// The restored token must authorize requests
		record, err := restarted.records.Get(ctx, clientID)
		require.NoError(t, err)
		require.Equal(t, "Ana", record.FirstName)
	})

	t.Run("Interests", func(t *testing.T) {
		interests, err := stack.records.Interests(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, interests)
	})

	t.Run("DeleteClient", func(t *testing.T) {
		require.NoError(t, stack.records.Delete(ctx, clientID))

		_, err := stack.records.Get(ctx, clientID)
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, api.KindRejected, apiErr.Kind)
		require.Equal(t, 404, apiErr.Status)
	})

	t.Run("Logout", func(t *testing.T) {
		stack.provider.Logout()

		require.False(t, stack.provider.Current().Authenticated)
		_, ok := stack.store.Token()
		require.False(t, ok, "logout must clear stored credentials")

		// Requests after logout carry no token and are rejected
		_, err := stack.records.Search(ctx, "")
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, api.KindRejected, apiErr.Kind)
		require.Equal(t, 401, apiErr.Status)
	})

	t.Run("RestartAfterLogoutIsUnauthenticated", func(t *testing.T) {
		restarted := newConsoleStack(t, httpServer.URL, dir)
		require.False(t, restarted.provider.Current().Authenticated)
	})
}
