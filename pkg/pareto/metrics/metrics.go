// Package metrics exposes prometheus instrumentation for optimizer runs.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "pareto"

	LabelAlgorithm = "algorithm"
	LabelOutcome   = "outcome"

	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Metrics holds the collectors updated by the optimizers.
type Metrics struct {
	evaluations      *prometheus.CounterVec
	samples          *prometheus.CounterVec
	generations      *prometheus.CounterVec
	frontierSize     *prometheus.GaugeVec
	fronts           *prometheus.GaugeVec
	optimizeDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with the given registerer.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Number of problem evaluations.",
		}, []string{LabelAlgorithm}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Number of Monte-Carlo samples by whether they entered the non-dominated set.",
		}, []string{LabelAlgorithm, LabelOutcome}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Number of evolved generations.",
		}, []string{LabelAlgorithm}),
		frontierSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frontier_size",
			Help:      "Number of points in the current Pareto frontier estimate.",
		}, []string{LabelAlgorithm}),
		fronts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sorted_fronts",
			Help:      "Number of fronts ranked by the last non-dominated sort.",
		}, []string{LabelAlgorithm}),
		optimizeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "optimize_duration_seconds",
			Help:      "Wall time of a single Optimize call.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{LabelAlgorithm}),
	}

	for _, c := range []prometheus.Collector{
		m.evaluations, m.samples, m.generations, m.frontierSize, m.fronts, m.optimizeDuration,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) AddEvaluations(algorithm string, count int) {
	if m == nil || count == 0 {
		return
	}
	m.evaluations.WithLabelValues(algorithm).Add(float64(count))
}

func (m *Metrics) AddSamples(algorithm string, accepted, rejected int) {
	if m == nil {
		return
	}
	m.samples.WithLabelValues(algorithm, OutcomeAccepted).Add(float64(accepted))
	m.samples.WithLabelValues(algorithm, OutcomeRejected).Add(float64(rejected))
}

func (m *Metrics) AddGenerations(algorithm string, count int) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(algorithm).Add(float64(count))
}

func (m *Metrics) SetFrontierSize(algorithm string, size int) {
	if m == nil {
		return
	}
	m.frontierSize.WithLabelValues(algorithm).Set(float64(size))
}

func (m *Metrics) SetFronts(algorithm string, count int) {
	if m == nil {
		return
	}
	m.fronts.WithLabelValues(algorithm).Set(float64(count))
}

// ObserveSince records the time elapsed since start as one Optimize call.
func (m *Metrics) ObserveSince(algorithm string, start time.Time) {
	if m == nil {
		return
	}
	m.optimizeDuration.WithLabelValues(algorithm).Observe(time.Since(start).Seconds())
}
