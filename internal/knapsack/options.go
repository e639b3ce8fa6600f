package knapsack

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultMinSpan is the smallest capacity range handed to a single task.
	DefaultMinSpan          = 20
	defaultProgressInterval = 2 * time.Second
)

// Option configures a packer.
type Option func(*options)

type options struct {
	logger           *zap.Logger
	minSpan          int
	progressInterval time.Duration
}

// WithLogger attaches a logger used for dispatch and progress messages.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMinSpan sets the minimum number of capacities a parallel task covers.
func WithMinSpan(span int) Option {
	return func(o *options) {
		if span > 0 {
			o.minSpan = span
		}
	}
}

// WithProgressInterval sets how often a long pack logs its progress.
// Zero or negative disables progress logs.
func WithProgressInterval(interval time.Duration) Option {
	return func(o *options) {
		o.progressInterval = interval
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:           zap.NewNop(),
		minSpan:          DefaultMinSpan,
		progressInterval: defaultProgressInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// progress emits at most one log line per interval while passes complete.
type progress struct {
	logger    *zap.Logger
	total     int
	sometimes *rate.Sometimes
}

func (o options) newProgress(total int) *progress {
	if o.progressInterval <= 0 {
		return &progress{}
	}
	return &progress{
		logger:    o.logger,
		total:     total,
		sometimes: &rate.Sometimes{Interval: o.progressInterval},
	}
}

func (p *progress) passDone(pass int) {
	if p.sometimes == nil {
		return
	}
	p.sometimes.Do(func() {
		p.logger.Info("packing progress",
			zap.Int("pass", pass+1),
			zap.Int("passes", p.total),
		)
	})
}
