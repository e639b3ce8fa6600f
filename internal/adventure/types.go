package adventure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eugenenazirov/adventure/internal/knapsack"
)

// Grain is a grain of sand, ordered by size.
type Grain struct {
	Size int `json:"size" yaml:"size"`
}

// Less orders grains by size.
func (g Grain) Less(other Grain) bool {
	return g.Size < other.Size
}

// Crystal is ordered by brilliance; the name only identifies it.
type Crystal struct {
	Name       string `json:"name" yaml:"name"`
	Brilliance int    `json:"brilliance" yaml:"brilliance"`
}

// Less orders crystals by brilliance.
func (c Crystal) Less(other Crystal) bool {
	return c.Brilliance < other.Brilliance
}

// Adventure is the capability shared by the sequential and parallel strategies.
type Adventure interface {
	// PackItems appends the most valuable subset of items that fits into
	// container and returns its total weight.
	PackItems(items []knapsack.Item, container *knapsack.Container) (int, error)
	// ArrangeGrains sorts grains ascending in place.
	ArrangeGrains(grains []Grain) error
	// SelectBestCrystal returns the first crystal with the greatest brilliance.
	SelectBestCrystal(crystals []Crystal) (Crystal, error)
	// Strategy names the implementation.
	Strategy() Strategy
	// Close releases resources owned by the strategy.
	Close() error
}

// Strategy selects an Adventure implementation.
type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyParallel   Strategy = "parallel"
)

// ErrUnknownStrategy is returned for strategy names other than sequential and parallel.
var ErrUnknownStrategy = errors.New("strategy must be one of: sequential, parallel")

// ParseStrategy converts a case-insensitive name into a Strategy.
func ParseStrategy(raw string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(raw))); s {
	case StrategySequential, StrategyParallel:
		return s, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnknownStrategy, raw)
	}
}
