// Package ordering sorts sequences and selects their maximum under a caller
// supplied strict weak order. Passing a nil pool runs on the calling
// goroutine; passing a pool splits the work across its workers.
package ordering
