package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/clientdesk-dev/clientdesk/internal/cli/api"
	"github.com/clientdesk-dev/clientdesk/internal/cli/config"
	"github.com/clientdesk-dev/clientdesk/internal/cli/credstore"
	"github.com/clientdesk-dev/clientdesk/internal/cli/session"
)

// console bundles the wired-up pieces every command needs: the session
// provider and the records client behind the authorizing HTTP client.
type console struct {
	apiURL   string
	provider *session.Provider
	records  *api.Client
}

// newConsole resolves the API base URL and assembles the console. This is
// the only place the auth chain (store -> gateway -> provider -> authorized
// client) is wired together.
func newConsole() (*console, error) {
	apiURL, err := config.ResolveAPIURL()
	if err != nil {
		return nil, err
	}

	log := newCLILogger()

	store := credstore.NewDefault(log)
	gateway := api.NewAuthGateway(apiURL, log)
	provider := session.NewProvider(store, gateway, log)
	records := api.NewClient(apiURL, api.NewHTTPClient(provider), log)

	return &console{
		apiURL:   apiURL,
		provider: provider,
		records:  records,
	}, nil
}

// newCLILogger returns a quiet stderr logger; command output itself goes to
// stdout via fmt
func newCLILogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: false,
	}
	return zerolog.New(output).Level(zerolog.WarnLevel).With().Timestamp().Logger()
}

// requireAuth fails early with a login hint instead of letting the server
// answer 401
func (c *console) requireAuth() error {
	if !c.provider.Current().Authenticated {
		return fmt.Errorf("not logged in. Run 'clientdesk login' first")
	}
	return nil
}
