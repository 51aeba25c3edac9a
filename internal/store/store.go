package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key does not exist or its entry has expired.
var ErrNotFound = errors.New("store: key not found")

// Store is the abstract key-value substrate the catalog persists into.
// A ttl of zero or less means the entry does not expire.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
