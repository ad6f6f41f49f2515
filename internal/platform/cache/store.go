package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a TTL map with load deduplication. Errors from loaders are never cached.
type Store[V any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	flight     singleflight.Group
	now        func() time.Time
}

// NewStore returns a store whose entries live for ttl. maxEntries <= 0 means unbounded.
func NewStore[V any](ttl time.Duration, maxEntries int) *Store[V] {
	return &Store[V]{
		entries:    make(map[string]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(ctx context.Context, key string, value V) {
	s.SetUntil(ctx, key, value, time.Time{})
}

// SetUntil stores value for the store TTL, cut short at expiresAt when it is
// earlier. A zero expiresAt means no cap; one already in the past stores nothing.
func (s *Store[V]) SetUntil(_ context.Context, key string, value V, expiresAt time.Time) {
	if key == "" || s.ttl <= 0 {
		return
	}

	now := s.now()
	deadline := now.Add(s.ttl)
	if !expiresAt.IsZero() {
		if !expiresAt.After(now) {
			return
		}
		if expiresAt.Before(deadline) {
			deadline = expiresAt
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		for k, e := range s.entries {
			if !e.expiresAt.After(now) {
				delete(s.entries, k)
			}
		}
		// still full: drop an arbitrary entry
		for k := range s.entries {
			if len(s.entries) < s.maxEntries {
				break
			}
			delete(s.entries, k)
		}
	}

	s.entries[key] = entry[V]{value: value, expiresAt: deadline}
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	if loader == nil {
		var zero V
		return zero, fmt.Errorf("loader is required")
	}
	return s.GetOrLoadUntil(ctx, key, func(ctx context.Context) (V, time.Time, error) {
		value, err := loader(ctx)
		return value, time.Time{}, err
	})
}

// GetOrLoadUntil is GetOrLoad for values that carry their own expiry.
func (s *Store[V]) GetOrLoadUntil(ctx context.Context, key string, loader func(context.Context) (V, time.Time, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		value, _, err := loader(ctx)
		return value, err
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	loaded, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		value, expiresAt, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.SetUntil(ctx, key, value, expiresAt)
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	return loaded.(V), nil
}
