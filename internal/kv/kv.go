// Package kv provides string key-value storage providers.
//
// A provider maps string keys to string values and offers whole-value
// get and set. There are no partial writes and no transactions; a Set
// replaces whatever was stored under the key.
package kv

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidKey is returned for keys a provider cannot store.
var ErrInvalidKey = errors.New("invalid key")

// Store is a key-value storage provider.
type Store interface {
	// Get returns the value stored under key.
	// ok is false if nothing is stored under key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key, value string) error

	// Close releases the provider's resources.
	Close() error
}

// ValidKey reports whether key is usable by every provider:
// non-empty, at most 191 bytes, no path separators and no leading dot.
func ValidKey(key string) bool {
	if key == "" || len(key) > 191 {
		return false
	}
	if strings.HasPrefix(key, ".") {
		return false
	}
	return !strings.ContainsAny(key, `/\`+"\x00")
}
