// Package kv provides the durable key-value storage used for the session
// collection and the user profile. Values are opaque byte slices; callers
// own serialization.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
