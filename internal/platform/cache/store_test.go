package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute, 0)
	var calls atomic.Int32
	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "uid-1", nil
	}

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "token-hash", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "uid-1" {
				errCh <- errors.New("unexpected loaded value " + v)
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute, 0)
	var calls atomic.Int32
	loader := func(context.Context) (string, error) {
		calls.Add(1)
		return "", errors.New("verify failed")
	}

	_, _ = store.GetOrLoad(context.Background(), "k", loader)
	_, _ = store.GetOrLoad(context.Background(), "k", loader)

	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_EntriesExpire(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	store := NewStore[int](time.Second, 0)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", 7)
	if v, ok := store.Get(context.Background(), "k"); !ok || v != 7 {
		t.Fatalf("expected cached value 7, got %d ok=%v", v, ok)
	}

	now = now.Add(2 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_SetRespectsMaxEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute, 2)
	store.Set(context.Background(), "a", 1)
	store.Set(context.Background(), "b", 2)
	store.Set(context.Background(), "c", 3)

	if got := store.Len(); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
	if v, ok := store.Get(context.Background(), "c"); !ok || v != 3 {
		t.Fatalf("expected newest entry to be kept")
	}
}

func TestStore_SetUntil_CapsTTLAtExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Hour, 0)
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.SetUntil(context.Background(), "short", "uid-1", now.Add(time.Minute))
	store.SetUntil(context.Background(), "stale", "uid-2", now.Add(-time.Second))

	if _, ok := store.Get(context.Background(), "stale"); ok {
		t.Fatalf("expected an already expired value not to be stored")
	}
	if _, ok := store.Get(context.Background(), "short"); !ok {
		t.Fatalf("expected value before its expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "short"); ok {
		t.Fatalf("expected value to expire at its own deadline, not the store TTL")
	}
}
