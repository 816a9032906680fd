package credstore

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// User is the persisted identity stored next to the token
type User struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Store reads and writes credentials across the two storage scopes.
//
// Storage is never a fatal dependency: every backend failure is logged and
// converted to a safe default ("not present" on reads, no-op on writes), so
// login and logout always complete in memory even with a broken keychain.
type Store struct {
	durable   Backend
	ephemeral Backend
	log       zerolog.Logger
}

// New creates a Store over the given scope backends
func New(durable, ephemeral Backend, log zerolog.Logger) *Store {
	return &Store{
		durable:   durable,
		ephemeral: ephemeral,
		log:       log,
	}
}

// NewDefault creates a Store over the OS keychain and the session file
func NewDefault(log zerolog.Logger) *Store {
	return New(NewKeyringBackend(), NewSessionFileBackend(), log)
}

// Token returns the stored bearer token, durable scope first
func (s *Store) Token() (string, bool) {
	return s.get(tokenKey)
}

// SetToken stores the token in exactly one scope: durable if remember is
// set, ephemeral otherwise. The other scope is cleared first. Empty tokens
// are ignored.
func (s *Store) SetToken(token string, remember bool) {
	if token == "" {
		return
	}
	s.set(tokenKey, token, remember)
	if remember {
		s.set(rememberKey, "true", remember)
	} else {
		s.set(rememberKey, "false", remember)
	}
}

// RemoveToken clears the token from both scopes
func (s *Store) RemoveToken() {
	s.delete(tokenKey)
	s.delete(rememberKey)
}

// User returns the stored identity. A stored value that parses but carries
// neither a user ID nor a username is treated as absent; it guards against
// corrupted or legacy entries.
func (s *Store) User() (User, bool) {
	raw, ok := s.get(userKey)
	if !ok {
		return User{}, false
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Debug().Err(err).Msg("Stored user is not valid JSON, treating as absent")
		return User{}, false
	}
	if user.UserID == "" && user.Username == "" {
		s.log.Debug().Msg("Stored user lacks both userId and username, treating as absent")
		return User{}, false
	}

	return user, true
}

// SetUser stores the identity under the same scope discipline as SetToken
func (s *Store) SetUser(user User, remember bool) {
	data, err := json.Marshal(user)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to encode user for storage")
		return
	}
	s.set(userKey, string(data), remember)
}

// RemoveUser clears the identity from both scopes
func (s *Store) RemoveUser() {
	s.delete(userKey)
}

// Remembered reports whether the stored session was created with "remember me"
func (s *Store) Remembered() bool {
	value, ok := s.get(rememberKey)
	return ok && value == "true"
}

// ClearAll removes the token, identity and remember flag from both scopes
func (s *Store) ClearAll() {
	s.delete(tokenKey)
	s.delete(userKey)
	s.delete(rememberKey)
}

// get reads a key from the durable scope first, falling back to the
// ephemeral scope
func (s *Store) get(key string) (string, bool) {
	for _, scope := range []struct {
		name    string
		backend Backend
	}{
		{"durable", s.durable},
		{"ephemeral", s.ephemeral},
	} {
		value, err := scope.backend.Get(key)
		if err == nil {
			return value, true
		}
		if err != ErrNotFound {
			s.log.Warn().Err(err).Str("scope", scope.name).Str("key", key).
				Msg("Credential storage read failed")
		}
	}
	return "", false
}

// set clears the key from both scopes, then writes it to exactly one
func (s *Store) set(key, value string, remember bool) {
	s.delete(key)

	target := s.ephemeral
	name := "ephemeral"
	if remember {
		target = s.durable
		name = "durable"
	}

	if err := target.Set(key, value); err != nil {
		s.log.Warn().Err(err).Str("scope", name).Str("key", key).
			Msg("Credential storage write failed")
	}
}

// delete removes a key from both scopes
func (s *Store) delete(key string) {
	if err := s.durable.Delete(key); err != nil {
		s.log.Warn().Err(err).Str("scope", "durable").Str("key", key).
			Msg("Credential storage delete failed")
	}
	if err := s.ephemeral.Delete(key); err != nil {
		s.log.Warn().Err(err).Str("scope", "ephemeral").Str("key", key).
			Msg("Credential storage delete failed")
	}
}
