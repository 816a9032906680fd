package api

import (
	"net/http"
	"time"
)

// TokenSource yields the current bearer token, if any, at the moment a
// request goes out
type TokenSource interface {
	Token() (string, bool)
}

// authorizedTransport attaches the session's bearer token to every outgoing
// request. The token is read from the TokenSource per request, so a login or
// logout takes effect immediately without reconfiguring the client. This is
// the only place the Authorization header is set; call sites never touch it.
type authorizedTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := t.tokens.Token(); ok && token != "" {
		// RoundTrippers must not mutate the caller's request
		clone := req.Clone(req.Context())
		clone.Header.Set("Authorization", "Bearer "+token)
		req = clone
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient returns an HTTP client whose requests carry the current
// session's bearer token
func NewHTTPClient(tokens TokenSource) *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &authorizedTransport{
			base:   http.DefaultTransport,
			tokens: tokens,
		},
	}
}
