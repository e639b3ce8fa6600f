// Package workload loads the input an adventure command operates on: the
// container capacity with its candidate items, the grains to arrange and the
// crystals to choose from.
package workload

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/eugenenazirov/adventure/internal/adventure"
	"github.com/eugenenazirov/adventure/internal/decode"
	"github.com/eugenenazirov/adventure/internal/knapsack"
)

// ErrInvalidWorkload indicates the workload file violates validation rules.
var ErrInvalidWorkload = errors.New("invalid workload")

// ItemEntry describes one packable item.
type ItemEntry struct {
	Size   int `yaml:"size" toml:"size"`
	Weight int `yaml:"weight" toml:"weight"`
}

// CrystalEntry describes one selectable crystal.
type CrystalEntry struct {
	Name       string `yaml:"name" toml:"name"`
	Brilliance int    `yaml:"brilliance" toml:"brilliance"`
}

// Workload is the decoded content of a workload file. Every section is
// optional; each command reads only the sections it needs.
type Workload struct {
	Capacity int           `yaml:"capacity" toml:"capacity"`
	Items    []ItemEntry    `yaml:"items" toml:"items"`
	Grains   []int         `yaml:"grains" toml:"grains"`
	Crystals []CrystalEntry `yaml:"crystals" toml:"crystals"`
}

// Load reads and validates a YAML or TOML workload file.
func Load(path string) (*Workload, error) {
	var w Workload
	if err := decode.File(path, &w); err != nil {
		return nil, fmt.Errorf("load workload: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Validate reports every negative capacity, size or weight at once.
func (w *Workload) Validate() error {
	var errs error

	if w.Capacity < 0 {
		errs = multierr.Append(errs, fmt.Errorf("capacity must be >= 0, got %d", w.Capacity))
	}
	for i, item := range w.Items {
		if item.Size < 0 || item.Weight < 0 {
			errs = multierr.Append(errs, fmt.Errorf("items[%d]: size and weight must be >= 0, got (%d, %d)", i, item.Size, item.Weight))
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWorkload, errs)
	}
	return nil
}

// Container returns an empty container sized to the workload capacity.
func (w *Workload) Container() (*knapsack.Container, error) {
	return knapsack.NewContainer(w.Capacity)
}

// PackItems converts the item section to packable items.
func (w *Workload) PackItems() []knapsack.Item {
	out := make([]knapsack.Item, len(w.Items))
	for i, item := range w.Items {
		out[i] = knapsack.NewItem(item.Size, item.Weight)
	}
	return out
}

// SandGrains returns a fresh copy of the grain section, safe to sort in place.
func (w *Workload) SandGrains() []adventure.Grain {
	out := make([]adventure.Grain, len(w.Grains))
	for i, size := range w.Grains {
		out[i] = adventure.Grain{Size: size}
	}
	return out
}

// CrystalSet converts the crystal section.
func (w *Workload) CrystalSet() []adventure.Crystal {
	out := make([]adventure.Crystal, len(w.Crystals))
	for i, c := range w.Crystals {
		out[i] = adventure.Crystal{Name: c.Name, Brilliance: c.Brilliance}
	}
	return out
}
