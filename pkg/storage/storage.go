// Package storage provides durable key/value backends that behave like a
// browser's local storage: string values under string keys, surviving restarts.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetItem when the key has never been written or
// was removed.
var ErrNotFound = errors.New("storage: key not found")

// Storage is the persistence surface used by the cart store.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Pinger exposes the readiness check implemented by every backend.
type Pinger interface {
	Ping(ctx context.Context) error
}
