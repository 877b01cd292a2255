package observability

import (
	"context"

	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records lowering runs as Prometheus series.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Strands  prometheus.Histogram
	Bindings prometheus.Counter
	Duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatefold_lowerings_total",
				Help: "Total number of lowering runs by outcome",
			},
			[]string{"outcome"},
		),
		Strands: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatefold_lowered_strands",
			Help:    "Number of strands produced per lowering run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		Bindings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatefold_bindings_issued_total",
			Help: "Total number of fresh bindings allocated",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "gatefold_lowering_duration_seconds",
			Help: "Duration of lowering runs",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Strands, m.Bindings, m.Duration)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLowerEnd: func(ctx context.Context, e *domain.LowerEvent) {
			m.Runs.WithLabelValues("ok").Inc()
			m.Strands.Observe(float64(e.Strands))
			m.Bindings.Add(float64(e.Bindings))
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnLowerError: func(ctx context.Context, e *domain.LowerEvent) {
			m.Runs.WithLabelValues("error").Inc()
		},
	}
}
