package storage

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned for keys that cannot name a stored value
var ErrInvalidKey = errors.New("invalid storage key")

// Gateway is the key to JSON text store the repository persists through.
// Get reports found=false for a key that was never written or was removed.
type Gateway interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Entry is one key/value pair of a batched write
type Entry struct {
	Key   string
	Value string
}

// BatchSetter is implemented by gateways that can write several keys as
// one atomic step.
type BatchSetter interface {
	SetMany(ctx context.Context, entries []Entry) error
}
