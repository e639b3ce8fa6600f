package knapsack

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eugenenazirov/adventure/internal/workerpool"
)

// ErrNilPool is returned when a parallel packer is built without a pool.
var ErrNilPool = errors.New("parallel packer requires a worker pool")

type parallelPacker struct {
	pool *workerpool.Pool
	opts options
}

// NewParallel creates a Packer that splits every item pass across the pool.
func NewParallel(pool *workerpool.Pool, opts ...Option) (Packer, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	return &parallelPacker{pool: pool, opts: buildOptions(opts)}, nil
}

// Pack processes items one pass at a time. Within a pass every task reads
// the frozen table of the previous pass and writes its own disjoint span of
// the current one; the pass ends only once every task has been joined.
func (p *parallelPacker) Pack(items []Item, container *Container) (int, error) {
	if err := validate(items, container); err != nil {
		return 0, err
	}

	n := container.Capacity()
	spans := workerpool.Partition(n+1, p.pool.Workers(), p.opts.minSpan)
	prev, cur := newTable(n), newTable(n)
	prov := newProvenance(items, n)
	report := p.opts.newProgress(len(items))

	p.opts.logger.Debug("packing dispatch",
		zap.String("pool", p.pool.Name()),
		zap.Int("capacity", n),
		zap.Int("items", len(items)),
		zap.Int("spans", len(spans)),
	)

	for pass, item := range items {
		src, dst, taken := prev, cur, prov.taken[pass]

		handles := make([]*workerpool.Handle[struct{}], 0, len(spans))
		for _, span := range spans {
			handles = append(handles, workerpool.Submit(p.pool, func() (struct{}, error) {
				return struct{}{}, fillSpan(src, dst, item, taken, span)
			}))
		}

		if _, err := workerpool.AwaitAll(handles); err != nil {
			return 0, fmt.Errorf("pack pass %d: %w", pass, err)
		}

		prev, cur = cur, prev
		report.passDone(pass)
	}

	value := settle(prev, prov, container)
	p.opts.logger.Debug("packing finished",
		zap.String("strategy", "parallel"),
		zap.Int("capacity", n),
		zap.Int("items", len(items)),
		zap.Int("value", value),
	)

	return value, nil
}

// fillSpan computes dst[c] for every c in span from src alone.
func fillSpan(src, dst *table, item Item, taken []bool, span workerpool.Span) error {
	for c := span.Lo; c < span.Hi; c++ {
		dst.best[c] = src.best[c]
		dst.reachable[c] = src.reachable[c]

		value, ok, err := candidate(src, c, item)
		if err != nil {
			return err
		}
		if ok && improves(dst, c, value) {
			dst.best[c] = value
			dst.reachable[c] = true
			taken[c] = true
		}
	}
	return nil
}
