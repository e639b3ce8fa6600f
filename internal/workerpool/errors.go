package workerpool

import "errors"

var (
	// ErrInvalidWorkers is returned when a pool is requested with fewer than one worker.
	ErrInvalidWorkers = errors.New("worker count must be a positive integer")
	// ErrPoolClosed is reported through a handle whose work was submitted after Close.
	ErrPoolClosed = errors.New("worker pool is closed")
	// ErrWorkerFailure wraps an error returned, or a panic raised, by submitted work.
	ErrWorkerFailure = errors.New("worker task failed")
)
