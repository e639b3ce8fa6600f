package workerpool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	poolWorkers = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "adventure_pool_workers",
		Help: "Number of workers in a running pool, 0 once stopped",
	}, []string{"pool"})

	tasksSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "adventure_pool_tasks_submitted_total",
		Help: "The total number of tasks submitted to the pool",
	}, []string{"pool"})

	tasksInlined = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "adventure_pool_tasks_inlined_total",
		Help: "The total number of submitted tasks run by the awaiting goroutine",
	}, []string{"pool"})

	taskFailures = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "adventure_pool_task_failures_total",
		Help: "The total number of tasks that returned an error or panicked",
	}, []string{"pool"})
)
