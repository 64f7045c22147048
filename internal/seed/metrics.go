package seed

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "eventseed"

// runMetrics tracks one seeding run in a private registry so batch runs can
// hand a complete snapshot to the node-exporter textfile collector.
type runMetrics struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	rowsWritten prometheus.Gauge
	rowsCleared prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

func newRunMetrics(driver string) *runMetrics {
	constLabels := prometheus.Labels{"driver": driver}
	m := &runMetrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        "runs_total",
			Help:        "Seeding runs by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		rowsWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "rows_written",
			Help:        "Rows inserted by the last run",
			ConstLabels: constLabels,
		}),
		rowsCleared: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "rows_cleared",
			Help:        "Rows deleted before the last insert",
			ConstLabels: constLabels,
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "run_duration_seconds",
			Help:        "Wall time of the last run",
			ConstLabels: constLabels,
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "last_success_timestamp_seconds",
			Help:        "Unix time of the last successful run",
			ConstLabels: constLabels,
		}),
	}
	m.registry.MustRegister(m.runs, m.rowsWritten, m.rowsCleared, m.duration, m.lastSuccess)
	return m
}

func (m *runMetrics) observe(res Result, runErr error, finishedAt time.Time) {
	m.duration.Set(res.Duration.Seconds())
	m.rowsCleared.Set(float64(res.Cleared))
	if runErr != nil {
		m.runs.WithLabelValues("failure").Inc()
		return
	}
	m.runs.WithLabelValues("success").Inc()
	m.rowsWritten.Set(float64(res.Count))
	m.lastSuccess.Set(float64(finishedAt.Unix()))
}

// writeTextfile writes the registry to path. An empty path is a no-op.
func (m *runMetrics) writeTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
