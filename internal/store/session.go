package store

import (
	"context"
	"time"
)

// SessionStore keeps serialized practice sessions keyed by session id.
type SessionStore interface {
	// Get returns the stored bytes for id.
	// Returns ErrSessionNotFound if there is no live entry.
	Get(ctx context.Context, id string) ([]byte, error)

	// Put stores data under id, replacing any previous value. The entry
	// expires after ttl.
	Put(ctx context.Context, id string, data []byte, ttl time.Duration) error

	// Delete removes id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
