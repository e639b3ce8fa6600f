package workerpool

import (
	"fmt"

	"github.com/alitto/pond/v2"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const defaultName = "adventure"

// Pool is a fixed-size set of workers shared by the parallel strategies.
// The size is chosen at construction and never changes.
type Pool struct {
	name    string
	workers int
	pool    pond.Pool
	logger  *zap.Logger
	closed  *atomic.Bool
}

// Option configures a Pool.
type Option func(*Pool)

// WithName sets the label used for the pool's metrics and logs.
func WithName(name string) Option {
	return func(p *Pool) {
		if name != "" {
			p.name = name
		}
	}
}

// WithLogger attaches a logger to the pool.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New starts a pool with the given number of workers.
func New(workers int, opts ...Option) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}

	p := &Pool{
		name:    defaultName,
		workers: workers,
		logger:  zap.NewNop(),
		closed:  atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.pool = pond.NewPool(workers)

	poolWorkers.WithLabelValues(p.name).Set(float64(workers))
	tasksSubmitted.WithLabelValues(p.name).Add(0)
	tasksInlined.WithLabelValues(p.name).Add(0)
	taskFailures.WithLabelValues(p.name).Add(0)

	p.logger.Debug("worker pool started",
		zap.String("pool", p.name),
		zap.Int("workers", workers),
	)

	return p, nil
}

// Name returns the pool label.
func (p *Pool) Name() string {
	return p.name
}

// Workers returns the fixed number of workers.
func (p *Pool) Workers() int {
	return p.workers
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// Close stops accepting work and waits for every queued task to finish.
// Calling Close more than once is a no-op.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	p.pool.StopAndWait()
	poolWorkers.WithLabelValues(p.name).Set(0)

	p.logger.Debug("worker pool stopped", zap.String("pool", p.name))
}

func (p *Pool) enqueue(run func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	if err := p.pool.Go(run); err != nil {
		return fmt.Errorf("%w: %w", ErrPoolClosed, err)
	}
	return nil
}
