package ordering

import (
	"slices"

	"github.com/eugenenazirov/adventure/internal/workerpool"
)

const (
	// DefaultThreshold is the range length at or below which sorting
	// switches to a direct comparison sort.
	DefaultThreshold = 32

	groupSize = 5
)

// SortOption configures Sort.
type SortOption func(*sortOptions)

type sortOptions struct {
	threshold int
}

// WithThreshold sets the smallest range length handled by recursion.
func WithThreshold(threshold int) SortOption {
	return func(o *sortOptions) {
		if threshold > 0 {
			o.threshold = threshold
		}
	}
}

// Sort orders s ascending in place. Each range is split at its median, found
// by a linear-time selection, and both halves are sorted recursively. With a
// pool the left half is submitted as a task while the caller sorts the right
// half, and ranges no longer than len(s)/workers+1 are sorted directly.
func Sort[T any](pool *workerpool.Pool, s []T, less func(a, b T) bool, opts ...SortOption) error {
	o := sortOptions{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	if len(s) < 2 {
		return nil
	}

	threshold := o.threshold
	if pool != nil {
		threshold = max(len(s)/pool.Workers()+1, threshold)
	}

	return quickSort(pool, s, less, threshold)
}

func quickSort[T any](pool *workerpool.Pool, s []T, less func(a, b T) bool, threshold int) (err error) {
	if len(s) <= threshold {
		slices.SortFunc(s, compareFunc(less))
		return nil
	}

	mid := len(s) / 2
	nthElement(s, mid, less)
	left, right := s[:mid], s[mid:]

	if pool == nil {
		if err := quickSort(nil, left, less, threshold); err != nil {
			return err
		}
		return quickSort(nil, right, less, threshold)
	}

	h := workerpool.Submit(pool, func() (struct{}, error) {
		return struct{}{}, quickSort(pool, left, less, threshold)
	})
	// The left half is joined even when sorting the right half fails.
	defer func() {
		if _, leftErr := h.Await(); leftErr != nil && err == nil {
			err = leftErr
		}
	}()

	return quickSort(pool, right, less, threshold)
}

// nthElement rearranges s so that s[k] holds the element a full sort would
// put there, everything before it is not greater and everything after it is
// not smaller.
func nthElement[T any](s []T, k int, less func(a, b T) bool) {
	lo, hi := 0, len(s)
	for hi-lo > groupSize {
		pivot := medianOfMedians(s[lo:hi], less)
		lt, gt := partition3(s, lo, hi, pivot, less)
		switch {
		case k < lt:
			hi = lt
		case k >= gt:
			lo = gt
		default:
			return
		}
	}
	insertionSort(s[lo:hi], less)
}

// medianOfMedians returns a pivot guaranteed to sit between the 30th and
// 70th percentile of s. It reorders s.
func medianOfMedians[T any](s []T, less func(a, b T) bool) T {
	groups := 0
	for i := 0; i < len(s); i += groupSize {
		end := min(i+groupSize, len(s))
		insertionSort(s[i:end], less)
		m := i + (end-i)/2
		s[groups], s[m] = s[m], s[groups]
		groups++
	}
	nthElement(s[:groups], groups/2, less)
	return s[groups/2]
}

// partition3 splits s[lo:hi] into elements less than, equal to and greater
// than pivot, returning the bounds of the equal block.
func partition3[T any](s []T, lo, hi int, pivot T, less func(a, b T) bool) (int, int) {
	lt, i, gt := lo, lo, hi
	for i < gt {
		switch {
		case less(s[i], pivot):
			s[lt], s[i] = s[i], s[lt]
			lt++
			i++
		case less(pivot, s[i]):
			gt--
			s[i], s[gt] = s[gt], s[i]
		default:
			i++
		}
	}
	return lt, gt
}

func insertionSort[T any](s []T, less func(a, b T) bool) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func compareFunc[T any](less func(a, b T) bool) func(a, b T) int {
	return func(a, b T) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	}
}
