package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const sessionFileName = "clientdesk-session.json"

// fileBackend stores credentials as a small JSON object in a single file.
// Pointed at the user runtime directory it becomes the ephemeral scope:
// the directory is wiped on reboot, so the stored session ends with it.
type fileBackend struct {
	path string
}

// NewSessionFileBackend returns the ephemeral Backend, a JSON file under
// XDG_RUNTIME_DIR (falling back to the system temp directory)
func NewSessionFileBackend() Backend {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return NewFileBackend(filepath.Join(dir, sessionFileName))
}

// NewFileBackend returns a Backend persisting to the given file path
func NewFileBackend(path string) Backend {
	return &fileBackend{path: path}
}

func (f *fileBackend) Get(key string) (string, error) {
	values, err := f.load()
	if err != nil {
		return "", err
	}

	value, exists := values[key]
	if !exists {
		return "", ErrNotFound
	}
	return value, nil
}

func (f *fileBackend) Set(key, value string) error {
	values, err := f.load()
	if err != nil {
		return err
	}

	values[key] = value
	return f.save(values)
}

func (f *fileBackend) Delete(key string) error {
	values, err := f.load()
	if err != nil {
		return err
	}

	if _, exists := values[key]; !exists {
		return nil // Already deleted
	}

	delete(values, key)

	// Remove the file entirely once the last key is gone
	if len(values) == 0 {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}

	return f.save(values)
}

func (f *fileBackend) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if values == nil {
		values = map[string]string{}
	}

	return values, nil
}

func (f *fileBackend) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session file: %w", err)
	}

	// 0600: the file holds a live bearer token
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}
