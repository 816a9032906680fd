// Package credstore persists the console's credentials across invocations.
//
// Credentials live in exactly one of two storage scopes: the durable scope
// (the OS keychain, survives reboots) when the user asked to be remembered,
// or the ephemeral scope (a file in the user runtime directory, gone after
// reboot) when they did not. Writing a key to one scope always clears it
// from the other, so a stale copy can never shadow the live one.
package credstore

import "errors"

// ErrNotFound is returned by a Backend when a key has no stored value
var ErrNotFound = errors.New("credstore: key not found")

// Backend is a flat key-value store for one storage scope. Implementations
// must return ErrNotFound for absent keys so callers can tell "absent" from
// "storage broken".
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Storage keys shared by both scopes
const (
	tokenKey    = "auth_token"
	userKey     = "auth_user"
	rememberKey = "auth_remember_me"
)
