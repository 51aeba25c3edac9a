package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cockroachdb/pebble"
)

// envelope wraps a stored value with its expiry so TTL survives restarts.
// The payload is opaque bytes, not assumed to be JSON itself.
type envelope struct {
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Payload   []byte    `json:"payload"`
}

// Pebble is a durable Store backed by a local PebbleDB.
type Pebble struct {
	db *pebble.DB
}

// NewPebble opens (or creates) a PebbleDB at dir.
func NewPebble(dir string) (*Pebble, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening pebble at %s: %w", dir, err)
	}
	return &Pebble{db: db}, nil
}

func (p *Pebble) Get(_ context.Context, key string) ([]byte, error) {
	value, closer, err := p.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(value, &env)
	if err := closer.Close(); err != nil {
		return nil, fmt.Errorf("closing read of %s: %w", key, err)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, decodeErr)
	}

	if !env.ExpiresAt.IsZero() && time.Now().After(env.ExpiresAt) {
		if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
			return nil, fmt.Errorf("sweeping expired %s: %w", key, err)
		}
		return nil, ErrNotFound
	}

	return env.Payload, nil
}

func (p *Pebble) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	env := envelope{Payload: value}
	if ttl > 0 {
		env.ExpiresAt = time.Now().Add(ttl)
	}

	encoded, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := p.db.Set([]byte(key), encoded, pebble.Sync); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) Delete(_ context.Context, key string) error {
	if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) Close() error {
	return p.db.Close()
}
