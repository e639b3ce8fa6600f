package workerpool

import (
	"fmt"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Handle is the blocking side of a submitted unit of work.
//
// A handle is claimed exactly once: either by a pool worker or, if no worker
// has picked it up yet, by the goroutine calling Await, which then runs the
// work inline. Awaiting therefore never waits on work that is still queued,
// so tasks that submit and await their own subtasks cannot starve the pool.
type Handle[T any] struct {
	pool    *Pool
	work    func() (T, error)
	claimed *atomic.Bool
	done    chan struct{}

	value T
	err   error
}

// Submit enqueues work on the pool and returns its handle without blocking.
// A nil pool defers the work to the first Await on the calling goroutine.
func Submit[T any](p *Pool, work func() (T, error)) *Handle[T] {
	h := &Handle[T]{
		pool:    p,
		work:    work,
		claimed: atomic.NewBool(false),
		done:    make(chan struct{}),
	}
	if p == nil {
		return h
	}

	tasksSubmitted.WithLabelValues(p.name).Inc()
	if err := p.enqueue(h.run); err != nil {
		h.reject(err)
	}

	return h
}

// Await blocks until the work has finished and returns its result.
// Errors and panics raised by the work are wrapped in ErrWorkerFailure.
func (h *Handle[T]) Await() (T, error) {
	if h.claimed.CompareAndSwap(false, true) {
		if h.pool != nil {
			tasksInlined.WithLabelValues(h.pool.name).Inc()
		}
		h.execute()
	}

	<-h.done
	return h.value, h.err
}

// Done is closed once the handle has a result.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

func (h *Handle[T]) run() {
	if h.claimed.CompareAndSwap(false, true) {
		h.execute()
	}
}

func (h *Handle[T]) reject(err error) {
	if h.claimed.CompareAndSwap(false, true) {
		h.err = err
		close(h.done)
	}
}

func (h *Handle[T]) execute() {
	defer close(h.done)
	defer func() {
		if rec := recover(); rec != nil {
			h.err = fmt.Errorf("%w: panic: %v", ErrWorkerFailure, rec)
			h.report()
		}
	}()

	value, err := h.work()
	if err != nil {
		h.err = fmt.Errorf("%w: %w", ErrWorkerFailure, err)
		h.report()
		return
	}
	h.value = value
}

func (h *Handle[T]) report() {
	if h.pool == nil {
		return
	}
	taskFailures.WithLabelValues(h.pool.name).Inc()
	h.pool.logger.Warn("task failed", zap.String("pool", h.pool.name), zap.Error(h.err))
}

// AwaitAll joins every handle, in order, before returning. If any of them
// failed, the first failure is returned once all have been joined.
func AwaitAll[T any](handles []*Handle[T]) ([]T, error) {
	results := make([]T, len(handles))

	var first error
	for i, h := range handles {
		value, err := h.Await()
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		results[i] = value
	}

	if first != nil {
		return nil, first
	}
	return results, nil
}
