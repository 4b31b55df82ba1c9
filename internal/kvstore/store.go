// Package kvstore provides the key-value persistence port used by the
// credential store and session manager. Implementations are injected so
// that callers never depend on a concrete storage engine.
package kvstore

import (
	"context"
	"errors"
)

// ErrClosed is returned when an operation is attempted on a closed store.
var ErrClosed = errors.New("kvstore: store is closed")

// Store is the persistence port. Get reports whether the key was present;
// an absent key is not an error. Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
