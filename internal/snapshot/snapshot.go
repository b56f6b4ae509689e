// Package snapshot persists opaque values under well-known keys. It is the
// server-side stand-in for the dashboard's browser storage: one key carries
// the full serialized entity graph, two small keys carry the auth flag and
// the last selected tab.
package snapshot

import (
	"context"
	"errors"
)

// Well-known storage keys.
const (
	KeyState     = "duckfarm-state"
	KeyAuth      = "duckfarm-auth"
	KeyActiveTab = "duckfarm-active-tab"
)

// ErrNoSnapshot is returned by Get when nothing has been stored under a key.
var ErrNoSnapshot = errors.New("snapshot: no value for key")

// Store is a minimal key/value persistence contract. Receivers always
// re-read through it after a change notification rather than trusting
// message payloads.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
