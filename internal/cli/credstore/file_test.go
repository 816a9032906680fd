package credstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	backend := NewFileBackend(path)

	if _, err := backend.Get("auth_token"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on empty backend, got %v", err)
	}

	if err := backend.Set("auth_token", "jwt-abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := backend.Get("auth_token")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "jwt-abc" {
		t.Errorf("expected 'jwt-abc', got '%s'", value)
	}
}

func TestFileBackend_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	backend := NewFileBackend(path)

	if err := backend.Set("auth_token", "jwt-abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	// The file holds a live bearer token, it must not be group or world readable
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected permissions 0600, got %04o", perm)
	}
}

func TestFileBackend_RemovesFileWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	backend := NewFileBackend(path)

	if err := backend.Set("auth_token", "jwt-abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := backend.Delete("auth_token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file should be removed once the last key is deleted")
	}

	// Deleting again is a no-op, not an error
	if err := backend.Delete("auth_token"); err != nil {
		t.Errorf("Delete on missing key should succeed, got %v", err)
	}
}

func TestFileBackend_DeleteKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	backend := NewFileBackend(path)

	if err := backend.Set("auth_token", "jwt-abc"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := backend.Set("auth_user", `{"userId":"u1","username":"alice"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := backend.Delete("auth_token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := backend.Get("auth_token"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for deleted key, got %v", err)
	}
	if _, err := backend.Get("auth_user"); err != nil {
		t.Errorf("remaining key should survive, got %v", err)
	}
}
