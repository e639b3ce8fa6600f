package ordering

import "github.com/eugenenazirov/adventure/internal/workerpool"

// Max returns the first greatest element of s. With a pool, s is split into
// one contiguous chunk per worker, each chunk is scanned by a task and the
// chunk winners are combined in order, so the result matches a plain scan.
func Max[T any](pool *workerpool.Pool, s []T, less func(a, b T) bool) (T, error) {
	var zero T
	if len(s) == 0 {
		return zero, ErrEmptySelection
	}
	if pool == nil {
		return s[maxIndex(s, less)], nil
	}

	spans := workerpool.Partition(len(s), pool.Workers(), 1)
	handles := make([]*workerpool.Handle[int], 0, len(spans))
	for _, span := range spans {
		handles = append(handles, workerpool.Submit(pool, func() (int, error) {
			return span.Lo + maxIndex(s[span.Lo:span.Hi], less), nil
		}))
	}

	winners, err := workerpool.AwaitAll(handles)
	if err != nil {
		return zero, err
	}

	best := winners[0]
	for _, idx := range winners[1:] {
		if less(s[best], s[idx]) {
			best = idx
		}
	}
	return s[best], nil
}

func maxIndex[T any](s []T, less func(a, b T) bool) int {
	best := 0
	for i := 1; i < len(s); i++ {
		if less(s[best], s[i]) {
			best = i
		}
	}
	return best
}
