// Package credential stores the Linear API key in the system keyring.
package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
)

const (
	serviceName = "linear-pm"

	// APIKeyItem is the keyring key the API key is stored under
	APIKeyItem = "api-key"
)

// ErrNotFound is returned when no API key has been stored
var ErrNotFound = errors.New("no API key stored; run 'linear-pm auth login'")

// Store reads and writes credentials in a keyring
type Store struct {
	ring keyring.Keyring
}

// NewStore wraps an opened keyring
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Open opens the system keyring, falling back to an encrypted file
func Open() (*Store, error) {
	dir := "~/.config/linear-pm/credentials"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".config", "linear-pm", "credentials")
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  dir,
		FilePasswordFunc:         keyring.FixedStringPrompt("linear-pm-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewStore(ring), nil
}

// APIKey returns the stored API key
func (s *Store) APIKey() (string, error) {
	item, err := s.ring.Get(APIKeyItem)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", APIKeyItem, err)
	}
	return string(item.Data), nil
}

// SetAPIKey stores the API key
func (s *Store) SetAPIKey(key string) error {
	if key == "" {
		return errors.New("API key must not be empty")
	}
	err := s.ring.Set(keyring.Item{
		Key:   APIKeyItem,
		Data:  []byte(key),
		Label: "Linear API key",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", APIKeyItem, err)
	}
	return nil
}

// DeleteAPIKey removes the API key. Deleting a missing key is not an error.
func (s *Store) DeleteAPIKey() error {
	err := s.ring.Remove(APIKeyItem)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", APIKeyItem, err)
	}
	return nil
}
