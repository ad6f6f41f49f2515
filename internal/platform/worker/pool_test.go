package worker

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
)

func TestPool_RunsSubmittedTasks(t *testing.T) {
	pool, err := NewPool(Config{Size: 4, MaxQueue: 16}, nil)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}

	var done atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			done.Add(1)
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	wg.Wait()

	if got := done.Load(); got != 8 {
		t.Fatalf("expected 8 completed tasks, got %d", got)
	}
	if err := pool.Close(time.Second); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestPool_SubmitAfterCloseFails(t *testing.T) {
	pool, err := NewPool(Config{Size: 1}, nil)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	if err := pool.Close(time.Second); err != nil {
		t.Fatalf("close: %v", err)
	}

	err = pool.Submit(func() {})
	if !errors.Is(err, ants.ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPool_RecoversPanickingTask(t *testing.T) {
	pool, err := NewPool(Config{Size: 1, MaxQueue: 4}, nil)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer func() { _ = pool.Close(time.Second) }()

	_ = pool.Submit(func() { panic("push client exploded") })

	ran := make(chan struct{})
	if err := pool.Submit(func() { close(ran) }); err != nil {
		t.Fatalf("submit after panic: %v", err)
	}
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected pool to keep working after a task panic")
	}
}

func TestPool_SubmitDoesNotBlockWhenQueueFull(t *testing.T) {
	pool, err := NewPool(Config{Size: 1, MaxQueue: 1}, nil)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}

	release := make(chan struct{})
	started := make(chan struct{})
	if err := pool.Submit(func() {
		close(started)
		<-release
	}); err != nil {
		t.Fatalf("submit blocker: %v", err)
	}
	<-started

	// One task parks in the feeder waiting for the busy worker, the next fills the queue.
	var overloaded bool
	for i := 0; i < 3; i++ {
		if err := pool.Submit(func() {}); errors.Is(err, ants.ErrPoolOverload) {
			overloaded = true
			break
		}
	}
	if !overloaded {
		t.Fatalf("expected ErrPoolOverload once the queue is full")
	}

	close(release)
	if err := pool.Close(time.Second); err != nil {
		t.Fatalf("close: %v", err)
	}
}
