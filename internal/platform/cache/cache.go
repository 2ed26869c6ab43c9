// Package cache implements store.SessionStore on top of an in-process
// dgraph-io/ristretto cache. Entries are evicted by TTL or when the total
// size exceeds the configured cost budget.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/phrazzld/recite/internal/store"
)

// ErrRejected is returned when the cache refuses to admit an entry, e.g.
// because it is larger than the whole budget.
var ErrRejected = errors.New("cache rejected entry")

// SessionCache keeps serialized sessions in memory.
type SessionCache struct {
	c *ristretto.Cache[string, []byte]
}

var _ store.SessionStore = (*SessionCache)(nil)

// New creates a ristretto-backed session cache. maxCostBytes is the maximum
// total size of cached values in bytes.
func New(maxCostBytes int64) (*SessionCache, error) {
	if maxCostBytes <= 0 {
		return nil, fmt.Errorf("max cost must be positive, got %d", maxCostBytes)
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: max(maxCostBytes/1024*10, 1000), // ~10x expected 1KB sessions
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &SessionCache{c: c}, nil
}

// Get implements store.SessionStore.
func (s *SessionCache) Get(_ context.Context, id string) ([]byte, error) {
	val, found := s.c.Get(id)
	if !found {
		return nil, store.ErrSessionNotFound
	}
	return append([]byte(nil), val...), nil
}

// Put implements store.SessionStore. The write is applied before Put
// returns so that the next request sees it.
func (s *SessionCache) Put(_ context.Context, id string, data []byte, ttl time.Duration) error {
	value := append([]byte(nil), data...)
	if !s.c.SetWithTTL(id, value, int64(len(value)), ttl) {
		return ErrRejected
	}
	s.c.Wait()
	if _, ok := s.c.Get(id); !ok {
		return ErrRejected
	}
	return nil
}

// Delete implements store.SessionStore.
func (s *SessionCache) Delete(_ context.Context, id string) error {
	s.c.Del(id)
	return nil
}

// Close shuts down the cache and releases resources.
func (s *SessionCache) Close() {
	s.c.Close()
}
