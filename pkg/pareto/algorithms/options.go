package algorithms

import (
	"k8s.io/klog/v2"

	"sigs.k8s.io/pareto/pkg/pareto/metrics"
)

// Option configures optional collaborators of an optimizer.
type Option func(*options)

type options struct {
	logger    klog.Logger
	metrics   *metrics.Metrics
	crossover CrossoverFunc
	mutation  MutationFunc
}

func newOptions(name string, opts []Option) options {
	o := options{
		logger:    klog.Background(),
		crossover: SimulatedBinaryCrossover,
		mutation:  AlternateRandomMutation,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.WithValues("algorithm", name)
	return o
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger klog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records evaluations, generations and frontier sizes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithCrossover replaces the crossover operator. Only NSGA-II uses it.
func WithCrossover(fn CrossoverFunc) Option {
	return func(o *options) {
		o.crossover = fn
	}
}

// WithMutation replaces the mutation operator. Only NSGA-II uses it.
func WithMutation(fn MutationFunc) Option {
	return func(o *options) {
		o.mutation = fn
	}
}
