// Package workerpool runs units of work on a fixed-size pool of goroutines
// backed by pond. Submit never blocks; Handle.Await blocks until the work has
// a result, running it inline when no worker has claimed it yet. Failures in
// submitted work surface only through the handle.
package workerpool
