// Package storage persists independently JSON-serialized values under fixed
// keys, mirroring the key/value layout owned by the UI shell. Writes always
// replace the whole value for a key; there is no partial patching.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the persisted state layout. The core does not define this format
// but must read and write it verbatim.
const (
	KeyUser            = "user"
	KeyToken           = "token"
	KeyDarkMode        = "darkMode"
	KeyAppointments    = "appointments"
	KeyPrescriptions   = "prescriptions"
	KeyRegisteredUsers = "registeredUsers"
)

var (
	// ErrClosed is returned when the backing store has been closed.
	ErrClosed = errors.New("storage: closed")
)

// Store is a whole-value key/value blob store.
type Store interface {
	// Get returns the raw value for key. The second result is false when
	// the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON reads and decodes the value for key into out. The first result is
// false when the key is absent, in which case out is untouched.
func GetJSON(ctx context.Context, store Store, key string, out any) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("storage: decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value and replaces the blob stored under key.
func SetJSON(ctx context.Context, store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}
