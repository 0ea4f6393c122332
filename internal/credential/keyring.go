// Package credential stores the session token in the system keyring.
package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const (
	serviceName = "futbolink"
	tokenKey    = "session_token"
)

// Store is a keyring-backed auth.TokenStore. One opaque string under a
// fixed key; absence means logged out.
type Store struct {
	open func() (keyring.Keyring, error)
}

// NewStore returns a Store backed by the platform keyring, falling back to
// an encrypted file under the user's config directory.
func NewStore() *Store {
	return &Store{open: openKeyring}
}

func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/futbolink/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("futbolink-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Read returns the stored token, or "" when none is stored.
func (s *Store) Read() (string, error) {
	ring, err := s.open()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading session token: %w", err)
	}
	return string(item.Data), nil
}

// Write stores the token, overwriting any previous one.
func (s *Store) Write(token string) error {
	ring, err := s.open()
	if err != nil {
		return err
	}
	if err := ring.Set(keyring.Item{Key: tokenKey, Data: []byte(token)}); err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}
	return nil
}

// Erase removes the token. Erasing an absent token is not an error.
func (s *Store) Erase() error {
	ring, err := s.open()
	if err != nil {
		return err
	}
	if err := ring.Remove(tokenKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("erasing session token: %w", err)
	}
	return nil
}
