package workerpool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestPool(t *testing.T, workers int, name string) *Pool {
	t.Helper()

	p, err := New(workers, WithName(name), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(p.Close)

	return p
}

func TestNewRejectsInvalidWorkerCount(t *testing.T) {
	t.Parallel()

	for _, workers := range []int{0, -1, -32} {
		p, err := New(workers)
		require.ErrorIs(t, err, ErrInvalidWorkers)
		assert.Nil(t, p)
	}
}

func TestNewAppliesOptions(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 3, "options")

	assert.Equal(t, "options", p.Name())
	assert.Equal(t, 3, p.Workers())
	assert.False(t, p.Closed())
	assert.InDelta(t, 3, testutil.ToFloat64(poolWorkers.WithLabelValues("options")), 0)
}

func TestSubmitReturnsValue(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 2, "submit-value")

	h := Submit(p, func() (int, error) {
		return 42, nil
	})

	got, err := h.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	select {
	case <-h.Done():
	default:
		t.Fatal("expected handle to be done after Await")
	}

	assert.InDelta(t, 1, testutil.ToFloat64(tasksSubmitted.WithLabelValues("submit-value")), 0)
}

func TestAwaitIsRepeatable(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, "repeat")

	var calls atomic.Int32
	h := Submit(p, func() (string, error) {
		calls.Add(1)
		return "once", nil
	})

	for range 3 {
		got, err := h.Await()
		require.NoError(t, err)
		assert.Equal(t, "once", got)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestSubmitWrapsWorkErrors(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 2, "work-error")
	boom := errors.New("boom")

	_, err := Submit(p, func() (int, error) {
		return 0, boom
	}).Await()

	require.ErrorIs(t, err, ErrWorkerFailure)
	require.ErrorIs(t, err, boom)
	assert.InDelta(t, 1, testutil.ToFloat64(taskFailures.WithLabelValues("work-error")), 0)
}

func TestSubmitRecoversPanics(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 2, "panic")

	_, err := Submit(p, func() (int, error) {
		panic("kaboom")
	}).Await()

	require.ErrorIs(t, err, ErrWorkerFailure)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestSubmitAfterCloseFails(t *testing.T) {
	t.Parallel()

	p, err := New(1, WithName("closed"))
	require.NoError(t, err)
	p.Close()
	p.Close()

	assert.True(t, p.Closed())

	var ran atomic.Bool
	_, err = Submit(p, func() (int, error) {
		ran.Store(true)
		return 1, nil
	}).Await()

	require.ErrorIs(t, err, ErrPoolClosed)
	assert.False(t, ran.Load(), "work must not run on a closed pool")
	assert.InDelta(t, 0, testutil.ToFloat64(poolWorkers.WithLabelValues("closed")), 0)
}

func TestNilPoolRunsOnAwait(t *testing.T) {
	t.Parallel()

	var ran atomic.Bool
	h := Submit(nil, func() (bool, error) {
		ran.Store(true)
		return true, nil
	})

	assert.False(t, ran.Load(), "nil pool must defer work to Await")

	got, err := h.Await()
	require.NoError(t, err)
	assert.True(t, got)
	assert.True(t, ran.Load())
}

func TestNestedSubmissionDoesNotStarveSingleWorker(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 1, "nested")

	var depth func(level int) (int, error)
	depth = func(level int) (int, error) {
		if level == 0 {
			return 0, nil
		}
		child := Submit(p, func() (int, error) {
			return depth(level - 1)
		})
		got, err := child.Await()
		return got + 1, err
	}

	done := make(chan int, 1)
	go func() {
		got, err := Submit(p, func() (int, error) { return depth(8) }).Await()
		assert.NoError(t, err)
		done <- got
	}()

	select {
	case got := <-done:
		assert.Equal(t, 8, got)
	case <-time.After(5 * time.Second):
		t.Fatal("nested submissions deadlocked")
	}
}

func TestAwaitAllJoinsEveryHandleBeforeFailing(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 4, "await-all")
	first := errors.New("first")

	var finished atomic.Int32
	handles := make([]*Handle[int], 0, 8)
	for i := range 8 {
		handles = append(handles, Submit(p, func() (int, error) {
			defer finished.Add(1)
			if i == 2 {
				return 0, first
			}
			if i == 5 {
				return 0, errors.New("second")
			}
			time.Sleep(time.Millisecond)
			return i, nil
		}))
	}

	results, err := AwaitAll(handles)
	require.ErrorIs(t, err, first)
	assert.Nil(t, results)
	assert.Equal(t, int32(8), finished.Load())
}

func TestAwaitAllPreservesOrder(t *testing.T) {
	t.Parallel()

	p := newTestPool(t, 3, "order")

	handles := make([]*Handle[int], 0, 16)
	for i := range 16 {
		handles = append(handles, Submit(p, func() (int, error) {
			return i * i, nil
		}))
	}

	results, err := AwaitAll(handles)
	require.NoError(t, err)
	for i, got := range results {
		assert.Equal(t, i*i, got)
	}
}

func TestCloseDrainsQueuedWork(t *testing.T) {
	t.Parallel()

	p, err := New(2, WithName("drain"))
	require.NoError(t, err)

	var mu sync.Mutex
	completed := 0
	handles := make([]*Handle[struct{}], 0, 10)
	for range 10 {
		handles = append(handles, Submit(p, func() (struct{}, error) {
			time.Sleep(time.Millisecond)
			mu.Lock()
			completed++
			mu.Unlock()
			return struct{}{}, nil
		}))
	}

	p.Close()

	for _, h := range handles {
		select {
		case <-h.Done():
		default:
			t.Fatal("expected every queued task to finish before Close returns")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, completed)
}
