// Package metrics exposes Prometheus counters for a batch analysis run and
// exports them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AlexAdowin/Analyse-sentiments/internal/sentiment"
)

const namespace = "sentiments"

// Batch holds the metrics updated while reviews are classified.
type Batch struct {
	Reviews  *prometheus.CounterVec
	Degraded prometheus.Counter
	Duration prometheus.Histogram
}

// New creates and registers batch metrics on the given registry.
func New(reg prometheus.Registerer) *Batch {
	m := &Batch{
		Reviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_total",
			Help:      "Total number of reviews classified, by label.",
		}, []string{"label"}),
		Degraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_total",
			Help:      "Reviews whose scoring failed and were set to neutral.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "review_duration_seconds",
			Help:      "Time spent classifying a single review.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}

	reg.MustRegister(m.Reviews, m.Degraded, m.Duration)
	return m
}

// Observe records one classified review. A nil Batch is a no-op.
func (m *Batch) Observe(label sentiment.Label, degraded bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Reviews.WithLabelValues(label.String()).Inc()
	if degraded {
		m.Degraded.Inc()
	}
	m.Duration.Observe(elapsed.Seconds())
}

// WriteTextfile gathers g and writes it to path for the node_exporter
// textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics.WriteTextfile: %w", err)
	}
	return nil
}
