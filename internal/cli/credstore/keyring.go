package credstore

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const keyringService = "clientdesk"

// keyringBackend stores credentials in the OS keychain/credential manager.
// This is the durable scope: entries survive reboots and are encrypted at
// rest by the platform.
type keyringBackend struct {
	service string
}

// NewKeyringBackend returns the durable Backend backed by the OS keychain
func NewKeyringBackend() Backend {
	return &keyringBackend{service: keyringService}
}

func (k *keyringBackend) Get(key string) (string, error) {
	value, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (k *keyringBackend) Set(key, value string) error {
	return keyring.Set(k.service, key, value)
}

func (k *keyringBackend) Delete(key string) error {
	if err := keyring.Delete(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return err
	}
	return nil
}
