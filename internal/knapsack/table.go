package knapsack

import (
	"fmt"
	"math"
)

// table holds the best value reachable at every exact capacity 0..N.
// best[c] is only meaningful while reachable[c] is true.
type table struct {
	best      []int
	reachable []bool
}

func newTable(capacity int) *table {
	t := &table{
		best:      make([]int, capacity+1),
		reachable: make([]bool, capacity+1),
	}
	t.reachable[0] = true
	return t
}

// candidate returns the value slot c would get by adding item on top of the
// slot it would be stacked on in src. Unreachable slots never take part in
// the sum.
func candidate(src *table, c int, item Item) (int, bool, error) {
	prev := c - item.size
	if prev < 0 || !src.reachable[prev] {
		return 0, false, nil
	}
	if src.best[prev] > math.MaxInt-item.weight {
		return 0, false, fmt.Errorf("%w: %d + %d at capacity %d", ErrValueOverflow, src.best[prev], item.weight, c)
	}
	return src.best[prev] + item.weight, true, nil
}

// improves reports whether value should replace slot c of dst.
func improves(dst *table, c, value int) bool {
	return !dst.reachable[c] || value > dst.best[c]
}

// provenance keeps one row per item pass marking the capacities whose best
// value was set by taking that pass's item.
type provenance struct {
	items []Item
	taken [][]bool
}

func newProvenance(items []Item, capacity int) *provenance {
	p := &provenance{
		items: items,
		taken: make([][]bool, len(items)),
	}
	for i := range p.taken {
		p.taken[i] = make([]bool, capacity+1)
	}
	return p
}

// unwind walks the passes in reverse starting at capacity and returns the
// chosen items in their original order. Lookups always use the running
// capacity left after the items already unwound.
func (p *provenance) unwind(capacity int) []Item {
	var chosen []Item
	remaining := capacity
	for pass := len(p.items) - 1; pass >= 0; pass-- {
		if !p.taken[pass][remaining] {
			continue
		}
		item := p.items[pass]
		chosen = append(chosen, item)
		remaining -= item.size
	}

	for i, j := 0, len(chosen)-1; i < j; i, j = i+1, j-1 {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	}
	return chosen
}

// bestCapacity returns the reachable capacity holding the greatest value,
// preferring the larger capacity on ties. Capacity 0 is always reachable.
func bestCapacity(t *table) int {
	best := -1
	for c := len(t.best) - 1; c >= 0; c-- {
		if !t.reachable[c] {
			continue
		}
		if best < 0 || t.best[c] > t.best[best] {
			best = c
		}
	}
	return best
}

// settle picks the winning capacity, fills the container and returns the value.
func settle(t *table, prov *provenance, container *Container) int {
	capacity := bestCapacity(t)
	for _, item := range prov.unwind(capacity) {
		container.AddItem(item)
	}
	return t.best[capacity]
}

func validate(items []Item, container *Container) error {
	if container == nil {
		return fmt.Errorf("%w: container is nil", ErrInvalidCapacity)
	}
	if container.capacity < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, container.capacity)
	}
	for i, item := range items {
		if item.size < 0 || item.weight < 0 {
			return fmt.Errorf("%w: item %d is %s", ErrInvalidItem, i, item)
		}
	}
	return nil
}
