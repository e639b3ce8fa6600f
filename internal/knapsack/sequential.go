package knapsack

import "go.uber.org/zap"

type sequentialPacker struct {
	opts options
}

// NewSequential creates a Packer that fills a single DP table in place on the
// calling goroutine.
func NewSequential(opts ...Option) Packer {
	return &sequentialPacker{opts: buildOptions(opts)}
}

func (p *sequentialPacker) Pack(items []Item, container *Container) (int, error) {
	if err := validate(items, container); err != nil {
		return 0, err
	}

	n := container.Capacity()
	t := newTable(n)
	prov := newProvenance(items, n)
	report := p.opts.newProgress(len(items))

	// Walking capacities downwards means slot c-size still holds the
	// previous pass's value, so each item is taken at most once.
	for pass, item := range items {
		taken := prov.taken[pass]
		for c := n; c >= item.size; c-- {
			value, ok, err := candidate(t, c, item)
			if err != nil {
				return 0, err
			}
			if ok && improves(t, c, value) {
				t.best[c] = value
				t.reachable[c] = true
				taken[c] = true
			}
		}
		report.passDone(pass)
	}

	value := settle(t, prov, container)
	p.opts.logger.Debug("packing finished",
		zap.String("strategy", "sequential"),
		zap.Int("capacity", n),
		zap.Int("items", len(items)),
		zap.Int("value", value),
	)

	return value, nil
}
