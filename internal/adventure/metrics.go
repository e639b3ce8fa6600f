package adventure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OperationDuration tracks how long each operation takes per strategy.
var OperationDuration = promauto.NewHistogramVec( //nolint:gochecknoglobals
	prometheus.HistogramOpts{
		Name:    "adventure_operation_duration_seconds",
		Help:    "Duration of pack, sort and select operations in seconds",
		Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	},
	[]string{"operation", "strategy"},
)

func observe(operation string, strategy Strategy, start time.Time) {
	OperationDuration.WithLabelValues(operation, string(strategy)).Observe(time.Since(start).Seconds())
}
