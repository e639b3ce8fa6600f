package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eugenenazirov/adventure/internal/adventure"
	"github.com/eugenenazirov/adventure/internal/config"
	"github.com/eugenenazirov/adventure/internal/knapsack"
	"github.com/eugenenazirov/adventure/internal/workerpool"
	"github.com/eugenenazirov/adventure/internal/workload"
)

// Command names one adventure operation.
type Command string

const (
	CommandPack   Command = "pack"
	CommandSort   Command = "sort"
	CommandSelect Command = "select"
)

// ErrUnknownCommand indicates Run was asked for an operation it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// App encapsulates the strategy and its dependencies for one run.
type App struct {
	cfg       config.Config
	adventure adventure.Adventure
	logger    *zap.Logger
	runID     string
	out       io.Writer
}

// Option customises an App.
type Option func(*App)

// WithOutput redirects reports, which go to stdout by default.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.out = w
		}
	}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	var pool *workerpool.Pool
	if cfg.Strategy == adventure.StrategyParallel {
		var err error
		pool, err = workerpool.New(cfg.Workers,
			workerpool.WithName("adventure"),
			workerpool.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create worker pool: %w", err)
		}
	}

	adv, err := adventure.New(cfg.Strategy, pool,
		adventure.WithLogger(logger),
		adventure.WithMinPackSpan(cfg.MinPackSpan),
		adventure.WithSortThreshold(cfg.SortThreshold),
		adventure.WithProgressInterval(cfg.ProgressInterval),
	)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("failed to create %s strategy: %w", cfg.Strategy, err)
	}

	app := &App{
		cfg:       cfg,
		adventure: adv,
		logger:    logger,
		runID:     runID,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

// RunID identifies this run in logs and reports.
func (a *App) RunID() string {
	return a.runID
}

// Run executes command against w and writes the report.
func (a *App) Run(command Command, w *workload.Workload) error {
	start := time.Now()
	a.logger.Info("running command",
		zap.String("command", string(command)),
		zap.String("strategy", string(a.cfg.Strategy)),
		zap.Int("workers", a.workers()),
	)

	var (
		result any
		err    error
	)
	switch command {
	case CommandPack:
		result, err = a.pack(w)
	case CommandSort:
		result, err = a.sort(w)
	case CommandSelect:
		result, err = a.selectCrystal(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if err != nil {
		a.logger.Warn("command failed", zap.String("command", string(command)), zap.Error(err))
		return fmt.Errorf("%s: %w", command, err)
	}

	elapsed := time.Since(start)
	a.logger.Info("command finished",
		zap.String("command", string(command)),
		zap.Duration("elapsed", elapsed),
	)

	return a.writeJSON(report{
		RunID:     a.runID,
		Command:   command,
		Strategy:  a.cfg.Strategy,
		Workers:   a.workers(),
		ElapsedMS: float64(elapsed.Microseconds()) / 1000,
		Result:    result,
	})
}

// Close releases the worker pool after queued tasks finish.
func (a *App) Close() error {
	return a.adventure.Close()
}

func (a *App) pack(w *workload.Workload) (packResult, error) {
	container, err := w.Container()
	if err != nil {
		return packResult{}, err
	}

	value, err := a.adventure.PackItems(w.PackItems(), container)
	if err != nil {
		return packResult{}, err
	}

	return packResult{
		Capacity:  container.Capacity(),
		Value:     value,
		TotalSize: container.TotalSize(),
		Items:     itemViews(container.Contents()),
	}, nil
}

func (a *App) sort(w *workload.Workload) (sortResult, error) {
	grains := w.SandGrains()
	if err := a.adventure.ArrangeGrains(grains); err != nil {
		return sortResult{}, err
	}
	return sortResult{Grains: grains}, nil
}

func (a *App) selectCrystal(w *workload.Workload) (selectResult, error) {
	crystal, err := a.adventure.SelectBestCrystal(w.CrystalSet())
	if err != nil {
		return selectResult{}, err
	}
	return selectResult{Crystal: crystal}, nil
}

func (a *App) workers() int {
	if p, ok := a.adventure.(*adventure.Parallel); ok {
		return p.Workers()
	}
	return 1
}

func (a *App) writeJSON(payload report) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

type report struct {
	RunID     string             `json:"run_id"`
	Command   Command            `json:"command"`
	Strategy  adventure.Strategy `json:"strategy"`
	Workers   int                `json:"workers"`
	ElapsedMS float64            `json:"elapsed_ms"`
	Result    any                `json:"result"`
}

type itemView struct {
	Size   int `json:"size"`
	Weight int `json:"weight"`
}

type packResult struct {
	Capacity  int        `json:"capacity"`
	Value     int        `json:"value"`
	TotalSize int        `json:"total_size"`
	Items     []itemView `json:"items"`
}

type sortResult struct {
	Grains []adventure.Grain `json:"grains"`
}

type selectResult struct {
	Crystal adventure.Crystal `json:"crystal"`
}

func itemViews(items []knapsack.Item) []itemView {
	out := make([]itemView, len(items))
	for i, item := range items {
		out[i] = itemView{Size: item.Size(), Weight: item.Weight()}
	}
	return out
}
