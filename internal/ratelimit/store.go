// Package ratelimit provides a fixed-window request limiter for the
// scan-heavy match endpoints. Redis-backed when configured, in-memory
// otherwise; on limiter failure requests pass through (fail open) so the
// limiter can never take the service down with it.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store counts requests per key within a window.
type Store interface {
	// Incr increments the counter for key in the current window and returns
	// the new count plus the remaining window duration.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is the in-process fallback when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]memoryWindow
	clock   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]memoryWindow),
		clock:   time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = memoryWindow{count: 0, resetAt: now.Add(window)}
	}
	w.count++
	s.windows[key] = w
	return w.count, w.resetAt.Sub(now), nil
}
