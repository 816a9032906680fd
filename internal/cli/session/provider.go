package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clientdesk-dev/clientdesk/internal/cli/api"
	"github.com/clientdesk-dev/clientdesk/internal/cli/credstore"
)

// Gateway is the slice of the auth API the provider depends on
type Gateway interface {
	Login(ctx context.Context, creds api.LoginCredentials) (*api.AuthResult, error)
	Register(ctx context.Context, creds api.RegisterCredentials) error
}

// Provider is the composition root for authentication. It is the single
// writer of the session state: login and logout replace the whole state
// under a lock, so observers never see a half-updated session. It also
// serves as the request authorizer's token source, read at call time.
type Provider struct {
	mu    sync.RWMutex
	state Session

	store   *credstore.Store
	gateway Gateway
	log     zerolog.Logger
}

// NewProvider creates a Provider with its initial state derived from the
// credential store. A stored token without a stored identity is treated as
// corrupt: both are discarded and the session starts unauthenticated.
func NewProvider(store *credstore.Store, gateway Gateway, log zerolog.Logger) *Provider {
	p := &Provider{
		store:   store,
		gateway: gateway,
		log:     log,
	}

	token, hasToken := store.Token()
	user, hasUser := store.User()

	switch {
	case hasToken && hasUser:
		p.state = Session{
			Authenticated: true,
			Token:         token,
			User:          &User{UserID: user.UserID, Username: user.Username},
		}
	case hasToken && !hasUser:
		log.Warn().Msg("Stored token has no matching identity, discarding session")
		store.ClearAll()
	}

	return p
}

// Current returns a copy of the session state
func (p *Provider) Current() Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot()
}

// Token returns the current bearer token. Implements api.TokenSource.
func (p *Provider) Token() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.state.Authenticated {
		return "", false
	}
	return p.state.Token, true
}

// Login authenticates against the gateway, persists the credentials under
// the requested scope and updates the session. On failure the state is left
// untouched and the error propagates to the caller.
func (p *Provider) Login(ctx context.Context, creds api.LoginCredentials, remember bool) (Session, error) {
	result, err := p.gateway.Login(ctx, creds)
	if err != nil {
		return Session{}, err
	}

	// Persist before publishing: a crash between the two leaves storage
	// ahead of memory, which the next start reconciles
	p.store.SetToken(result.Token, remember)
	p.store.SetUser(credstore.User{UserID: result.UserID, Username: result.Username}, remember)

	p.mu.Lock()
	p.state = Session{
		Authenticated: true,
		Token:         result.Token,
		User:          &User{UserID: result.UserID, Username: result.Username},
	}
	snapshot := p.snapshot()
	p.mu.Unlock()

	p.log.Debug().Str("user_id", result.UserID).Bool("remember", remember).Msg("Session established")

	return snapshot, nil
}

// Register creates an account. It never mutates the session: registration
// does not imply login.
func (p *Provider) Register(ctx context.Context, creds api.RegisterCredentials) error {
	return p.gateway.Register(ctx, creds)
}

// Logout clears stored credentials and resets the session. Idempotent:
// logging out twice leaves the same state as once.
func (p *Provider) Logout() {
	p.store.ClearAll()

	p.mu.Lock()
	p.state = Session{}
	p.mu.Unlock()

	p.log.Debug().Msg("Session cleared")
}

// snapshot copies the state, including the User value, so callers cannot
// alias the provider's own fields. Callers must hold at least a read lock.
func (p *Provider) snapshot() Session {
	out := p.state
	if p.state.User != nil {
		user := *p.state.User
		out.User = &user
	}
	return out
}
