package credstore

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

// memBackend is an in-memory Backend for tests
type memBackend struct {
	values map[string]string
}

func newMemBackend() *memBackend {
	return &memBackend{values: make(map[string]string)}
}

func (m *memBackend) Get(key string) (string, error) {
	value, exists := m.values[key]
	if !exists {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *memBackend) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memBackend) Delete(key string) error {
	delete(m.values, key)
	return nil
}

// brokenBackend fails every operation, simulating a keychain that is locked
// or missing
type brokenBackend struct{}

var errBroken = errors.New("keychain unavailable")

func (b *brokenBackend) Get(key string) (string, error) { return "", errBroken }
func (b *brokenBackend) Set(key, value string) error    { return errBroken }
func (b *brokenBackend) Delete(key string) error        { return errBroken }

func newTestStore() (*Store, *memBackend, *memBackend) {
	durable := newMemBackend()
	ephemeral := newMemBackend()
	return New(durable, ephemeral, zerolog.Nop()), durable, ephemeral
}

func TestStore_SetToken_EphemeralScope(t *testing.T) {
	store, durable, ephemeral := newTestStore()

	store.SetToken("jwt-abc", false)

	token, ok := store.Token()
	if !ok {
		t.Fatal("expected token to be present")
	}
	if token != "jwt-abc" {
		t.Errorf("expected token 'jwt-abc', got '%s'", token)
	}

	if _, exists := durable.values[tokenKey]; exists {
		t.Error("token should not be in the durable scope")
	}
	if ephemeral.values[tokenKey] != "jwt-abc" {
		t.Error("token should be in the ephemeral scope")
	}

	if store.Remembered() {
		t.Error("session without remember should not report remembered")
	}
}

func TestStore_SetToken_DurableScope(t *testing.T) {
	store, durable, ephemeral := newTestStore()

	store.SetToken("jwt-abc", true)

	token, ok := store.Token()
	if !ok || token != "jwt-abc" {
		t.Fatalf("expected token 'jwt-abc', got '%s' (present=%v)", token, ok)
	}

	if durable.values[tokenKey] != "jwt-abc" {
		t.Error("token should be in the durable scope")
	}
	if _, exists := ephemeral.values[tokenKey]; exists {
		t.Error("token should not be in the ephemeral scope")
	}

	if !store.Remembered() {
		t.Error("remembered session should report remembered")
	}
}

// A later login with a different scope must evict the previous scope's copy,
// so the token never exists in both places at once.
func TestStore_SetToken_SwitchingScopeClearsOldScope(t *testing.T) {
	store, durable, ephemeral := newTestStore()

	store.SetToken("token-one", true)
	store.SetToken("token-two", false)

	if _, exists := durable.values[tokenKey]; exists {
		t.Error("durable copy should be cleared after an ephemeral login")
	}
	if ephemeral.values[tokenKey] != "token-two" {
		t.Error("ephemeral scope should hold the new token")
	}

	token, ok := store.Token()
	if !ok || token != "token-two" {
		t.Errorf("expected 'token-two', got '%s' (present=%v)", token, ok)
	}
	if store.Remembered() {
		t.Error("remember flag should track the latest login")
	}
}

func TestStore_SetToken_IgnoresEmptyToken(t *testing.T) {
	store, durable, ephemeral := newTestStore()

	store.SetToken("", false)

	if _, ok := store.Token(); ok {
		t.Error("empty token should not be stored")
	}
	if len(durable.values) != 0 || len(ephemeral.values) != 0 {
		t.Error("empty token should leave both scopes untouched")
	}
}

func TestStore_User_RoundTrip(t *testing.T) {
	store, _, _ := newTestStore()

	store.SetUser(User{UserID: "user-123", Username: "alice"}, true)

	user, ok := store.User()
	if !ok {
		t.Fatal("expected user to be present")
	}
	if user.UserID != "user-123" || user.Username != "alice" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestStore_User_RejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not JSON", "garbage"},
		{"empty object", "{}"},
		{"both fields empty", `{"userId":"","username":""}`},
		{"wrong shape", `["user-123"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, durable, _ := newTestStore()
			durable.values[userKey] = tt.value

			if _, ok := store.User(); ok {
				t.Errorf("value %q should be treated as absent", tt.value)
			}
		})
	}
}

func TestStore_ClearAll_Idempotent(t *testing.T) {
	store, durable, ephemeral := newTestStore()

	store.SetToken("jwt-abc", true)
	store.SetUser(User{UserID: "user-123", Username: "alice"}, true)

	store.ClearAll()
	store.ClearAll()

	if _, ok := store.Token(); ok {
		t.Error("token should be gone after ClearAll")
	}
	if _, ok := store.User(); ok {
		t.Error("user should be gone after ClearAll")
	}
	if store.Remembered() {
		t.Error("remember flag should be gone after ClearAll")
	}
	if len(durable.values) != 0 || len(ephemeral.values) != 0 {
		t.Error("both scopes should be empty after ClearAll")
	}
}

// A broken keychain must never break login or logout: writes land in the
// surviving scope and reads fall through to it.
func TestStore_BrokenDurableBackend_FallsThrough(t *testing.T) {
	ephemeral := newMemBackend()
	store := New(&brokenBackend{}, ephemeral, zerolog.Nop())

	store.SetToken("jwt-abc", false)
	store.SetUser(User{UserID: "user-123", Username: "alice"}, false)

	token, ok := store.Token()
	if !ok || token != "jwt-abc" {
		t.Errorf("expected token via ephemeral scope, got '%s' (present=%v)", token, ok)
	}
	if _, ok := store.User(); !ok {
		t.Error("expected user via ephemeral scope")
	}

	// Logout must complete even though one scope keeps failing
	store.ClearAll()
	if _, ok := store.Token(); ok {
		t.Error("token should be cleared from the working scope")
	}
}

func TestStore_Token_PrefersDurableScope(t *testing.T) {
	store, durable, ephemeral := newTestStore()

	durable.values[tokenKey] = "durable-token"
	ephemeral.values[tokenKey] = "stale-token"

	token, ok := store.Token()
	if !ok || token != "durable-token" {
		t.Errorf("expected durable token to win, got '%s' (present=%v)", token, ok)
	}
}
