// Package adventure exposes packing, sorting and selection behind one
// capability interface with two interchangeable strategies: Sequential runs on
// the calling goroutine and Parallel spreads work over a worker pool it owns.
package adventure
