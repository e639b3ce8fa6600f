package adventure

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/adventure/internal/knapsack"
	"github.com/eugenenazirov/adventure/internal/ordering"
	"github.com/eugenenazirov/adventure/internal/workerpool"
)

// ErrNilPool is returned when the parallel strategy is built without a pool.
var ErrNilPool = errors.New("parallel strategy requires a worker pool")

// Option configures a strategy.
type Option func(*settings)

type settings struct {
	logger           *zap.Logger
	minPackSpan      int
	sortThreshold    int
	progressInterval time.Duration
}

// WithLogger attaches a logger to the strategy and its packer.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMinPackSpan sets the smallest capacity range a parallel packing task covers.
func WithMinPackSpan(span int) Option {
	return func(s *settings) {
		s.minPackSpan = span
	}
}

// WithSortThreshold sets the range length below which sorting runs directly.
func WithSortThreshold(threshold int) Option {
	return func(s *settings) {
		s.sortThreshold = threshold
	}
}

// WithProgressInterval sets how often long packing runs log progress.
func WithProgressInterval(interval time.Duration) Option {
	return func(s *settings) {
		s.progressInterval = interval
	}
}

func buildSettings(opts []Option) settings {
	s := settings{
		logger:           zap.NewNop(),
		minPackSpan:      knapsack.DefaultMinSpan,
		sortThreshold:    ordering.DefaultThreshold,
		progressInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) packerOptions() []knapsack.Option {
	return []knapsack.Option{
		knapsack.WithLogger(s.logger),
		knapsack.WithMinSpan(s.minPackSpan),
		knapsack.WithProgressInterval(s.progressInterval),
	}
}

// New builds the strategy by name. The parallel strategy takes ownership of
// pool and closes it on Close; the sequential strategy ignores it.
func New(strategy Strategy, pool *workerpool.Pool, opts ...Option) (Adventure, error) {
	switch strategy {
	case StrategySequential:
		return NewSequential(opts...), nil
	case StrategyParallel:
		parallel, err := NewParallel(pool, opts...)
		if err != nil {
			return nil, err
		}
		return parallel, nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnknownStrategy, strategy)
	}
}

// Sequential runs every operation on the calling goroutine.
type Sequential struct {
	packer   knapsack.Packer
	settings settings
}

// NewSequential creates the single-goroutine strategy.
func NewSequential(opts ...Option) *Sequential {
	s := buildSettings(opts)
	return &Sequential{
		packer:   knapsack.NewSequential(s.packerOptions()...),
		settings: s,
	}
}

func (a *Sequential) PackItems(items []knapsack.Item, container *knapsack.Container) (int, error) {
	defer observe("pack", StrategySequential, time.Now())
	return a.packer.Pack(items, container)
}

func (a *Sequential) ArrangeGrains(grains []Grain) error {
	defer observe("sort", StrategySequential, time.Now())
	return ordering.Sort(nil, grains, Grain.Less, ordering.WithThreshold(a.settings.sortThreshold))
}

func (a *Sequential) SelectBestCrystal(crystals []Crystal) (Crystal, error) {
	defer observe("select", StrategySequential, time.Now())
	return ordering.Max(nil, crystals, Crystal.Less)
}

func (a *Sequential) Strategy() Strategy {
	return StrategySequential
}

func (a *Sequential) Close() error {
	return nil
}

// Parallel spreads every operation over a worker pool it owns.
type Parallel struct {
	pool     *workerpool.Pool
	packer   knapsack.Packer
	settings settings
}

// NewParallel creates the pool-backed strategy.
func NewParallel(pool *workerpool.Pool, opts ...Option) (*Parallel, error) {
	if pool == nil {
		return nil, ErrNilPool
	}

	s := buildSettings(opts)
	packer, err := knapsack.NewParallel(pool, s.packerOptions()...)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("parallel strategy ready",
		zap.String("pool", pool.Name()),
		zap.Int("workers", pool.Workers()),
	)

	return &Parallel{
		pool:     pool,
		packer:   packer,
		settings: s,
	}, nil
}

func (a *Parallel) PackItems(items []knapsack.Item, container *knapsack.Container) (int, error) {
	defer observe("pack", StrategyParallel, time.Now())
	return a.packer.Pack(items, container)
}

func (a *Parallel) ArrangeGrains(grains []Grain) error {
	defer observe("sort", StrategyParallel, time.Now())
	return ordering.Sort(a.pool, grains, Grain.Less, ordering.WithThreshold(a.settings.sortThreshold))
}

func (a *Parallel) SelectBestCrystal(crystals []Crystal) (Crystal, error) {
	defer observe("select", StrategyParallel, time.Now())
	return ordering.Max(a.pool, crystals, Crystal.Less)
}

func (a *Parallel) Strategy() Strategy {
	return StrategyParallel
}

// Workers returns the size of the underlying pool.
func (a *Parallel) Workers() int {
	return a.pool.Workers()
}

// Close stops the pool after its queued tasks have finished.
func (a *Parallel) Close() error {
	a.pool.Close()
	return nil
}

var (
	_ Adventure = (*Sequential)(nil)
	_ Adventure = (*Parallel)(nil)
)
