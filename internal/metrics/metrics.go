// Package metrics exposes task pool activity as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kubev2v/task-engine/pkg/taskmanager"
)

const subsystem = "pool"

// Metrics holds the Prometheus collectors fed by the pool hooks.
type Metrics struct {
	TasksSubmitted prometheus.Counter
	TasksCancelled prometheus.Counter
	TasksCompleted prometheus.Counter
	TasksFailed    prometheus.Counter
	TasksRunning   prometheus.Gauge
	ActiveWorkers  prometheus.Gauge
	TaskDuration   prometheus.Histogram

	namespace string
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		namespace: namespace,
		TasksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_submitted_total",
			Help:      "Total number of tasks accepted by the pool",
		}),
		TasksCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_cancelled_total",
			Help:      "Total number of tasks removed from the queue before running",
		}),
		TasksCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_completed_total",
			Help:      "Total number of tasks that executed and completed",
		}),
		TasksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_failed_total",
			Help:      "Total number of tasks that panicked",
		}),
		TasksRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_running",
			Help:      "Number of tasks currently executing",
		}),
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_workers",
			Help:      "Number of parallel worker goroutines alive",
		}),
		TaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "task_duration_seconds",
			Help:      "Time spent in Execute and Complete",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.TasksSubmitted,
		m.TasksCancelled,
		m.TasksCompleted,
		m.TasksFailed,
		m.TasksRunning,
		m.ActiveWorkers,
		m.TaskDuration,
	)
	return m
}

// Hooks returns pool hooks that update the collectors.
func (m *Metrics) Hooks() taskmanager.Hooks {
	return taskmanager.Hooks{
		OnSubmit: m.TasksSubmitted.Inc,
		OnCancel: m.TasksCancelled.Inc,
		OnStart:  m.TasksRunning.Inc,
		OnComplete: func(elapsed time.Duration) {
			m.TasksRunning.Dec()
			m.TasksCompleted.Inc()
			m.TaskDuration.Observe(elapsed.Seconds())
		},
		OnPanic: func(error) {
			m.TasksRunning.Dec()
			m.TasksFailed.Inc()
		},
		OnWorkerStart: m.ActiveWorkers.Inc,
		OnWorkerStop:  m.ActiveWorkers.Dec,
	}
}

// WatchQueue registers a gauge reading the queue depth on every scrape.
func (m *Metrics) WatchQueue(reg prometheus.Registerer, depth func() int) error {
	return reg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "tasks_queued",
		Help:      "Number of tasks waiting in the queue",
	}, func() float64 {
		return float64(depth())
	}))
}
