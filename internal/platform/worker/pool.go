package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/findrival/internal/platform/logging"
)

// Pool runs fire-and-forget tasks on a bounded set of goroutines.
// Submit never blocks: with a queue, tasks wait in a buffer of MaxQueue
// entries; without one, a saturated pool rejects the task.
type Pool struct {
	pool   *ants.Pool
	logger *logging.Logger

	queue chan func()
	fed   chan struct{}

	mu     sync.RWMutex
	closed bool
}

type Config struct {
	Size     int
	MaxQueue int
}

func NewPool(cfg Config, logger *logging.Logger) (*Pool, error) {
	if logger == nil {
		logger = logging.Default()
	}
	size := cfg.Size
	if size < 1 {
		size = 1
	}

	opts := []ants.Option{
		ants.WithPanicHandler(func(rec any) {
			logger.Error("worker task panicked", "panic", rec)
		}),
	}
	if cfg.MaxQueue <= 0 {
		opts = append(opts, ants.WithNonblocking(true))
	}

	pool, err := ants.NewPool(size, opts...)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	p := &Pool{pool: pool, logger: logger}
	if cfg.MaxQueue > 0 {
		p.queue = make(chan func(), cfg.MaxQueue)
		p.fed = make(chan struct{})
		go p.feed()
	}
	return p, nil
}

// Submit queues task. It fails when the pool is closed or saturated.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return fmt.Errorf("submit task: %w", ants.ErrPoolClosed)
	}
	if p.queue == nil {
		if err := p.pool.Submit(task); err != nil {
			return fmt.Errorf("submit task: %w", err)
		}
		return nil
	}

	select {
	case p.queue <- task:
		return nil
	default:
		return fmt.Errorf("submit task: %w", ants.ErrPoolOverload)
	}
}

func (p *Pool) Running() int {
	return p.pool.Running()
}

// Close stops accepting work and waits up to timeout for queued and running tasks.
func (p *Pool) Close(timeout time.Duration) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		if p.queue != nil {
			close(p.queue)
		}
	}
	p.mu.Unlock()

	deadline := time.Now().Add(timeout)
	if p.fed != nil {
		select {
		case <-p.fed:
		case <-time.After(timeout):
		}
	}

	remaining := time.Until(deadline)
	if remaining < time.Millisecond {
		remaining = time.Millisecond
	}
	if err := p.pool.ReleaseTimeout(remaining); err != nil {
		p.logger.Warn("worker pool did not drain in time", "timeout", timeout, "running", p.pool.Running())
		return fmt.Errorf("release worker pool: %w", err)
	}
	return nil
}

// feed hands queued tasks to the ants pool, waiting for a free worker.
func (p *Pool) feed() {
	defer close(p.fed)
	for task := range p.queue {
		if err := p.pool.Submit(task); err != nil {
			p.logger.Warn("dropping queued worker task", "error", err)
		}
	}
}
