package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// LoginCredentials carries a login form. Transient: built for one request,
// never persisted.
type LoginCredentials struct {
	Username string
	Password string
}

// RegisterCredentials carries a registration form
type RegisterCredentials struct {
	Username string
	Email    string
	Password string
}

// AuthResult is the normalized outcome of a successful login
type AuthResult struct {
	Token    string
	UserID   string
	Username string
}

// AuthGateway performs the login and register exchanges against the
// authentication API and translates its response shapes into the console's
// session model. It deliberately uses an unauthorized HTTP client: both
// endpoints are public.
type AuthGateway struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewAuthGateway creates a gateway against the given API base URL
func NewAuthGateway(baseURL string, log zerolog.Logger) *AuthGateway {
	return &AuthGateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// SetHTTPClient sets a custom HTTP client
func (g *AuthGateway) SetHTTPClient(httpClient *http.Client) {
	g.httpClient = httpClient
}

type loginRequest struct {
	Username string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token      string `json:"token"`
	Expiration string `json:"expiration"`
	UserID     string `json:"userid"`
	Username   string `json:"username"`
}

type registerRequest struct {
	Username string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and identity. A 2xx response
// missing the token, user ID or username fails outright: a partially valid
// session must never reach the credential store.
func (g *AuthGateway) Login(ctx context.Context, creds LoginCredentials) (*AuthResult, error) {
	payload := loginRequest{
		Username: creds.Username,
		Password: creds.Password,
	}

	body, err := doRequest(ctx, g.httpClient, http.MethodPost, fmt.Sprintf("%s/api/auth/login", g.baseURL), payload)
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, invalidResponseError("login response is not valid JSON")
	}

	if resp.Token == "" || resp.UserID == "" || resp.Username == "" {
		g.log.Debug().
			Bool("has_token", resp.Token != "").
			Bool("has_userid", resp.UserID != "").
			Bool("has_username", resp.Username != "").
			Msg("Login response missing required fields")
		return nil, invalidResponseError("login response missing token, userid or username")
	}

	return &AuthResult{
		Token:    resp.Token,
		UserID:   resp.UserID,
		Username: resp.Username,
	}, nil
}

// Register creates a new account. Succeeds iff the server returns a 2xx
// with a response body.
func (g *AuthGateway) Register(ctx context.Context, creds RegisterCredentials) error {
	payload := registerRequest{
		Username: creds.Username,
		Email:    creds.Email,
		Password: creds.Password,
	}

	body, err := doRequest(ctx, g.httpClient, http.MethodPost, fmt.Sprintf("%s/api/auth/register", g.baseURL), payload)
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return invalidResponseError("registration returned an empty response")
	}

	return nil
}
