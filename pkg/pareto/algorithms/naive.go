package algorithms

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

const (
	NaiveName = "Naive"
)

// naiveEntry is a stored non-dominated point.
type naiveEntry struct {
	objectives []float64
	parameters []float64
}

// Naive is the Monte-Carlo Pareto optimizer. It draws uniformly distributed
// samples inside the box constraints of the problem and keeps every
// non-dominated point, ordered lexicographically by objective vector.
type Naive struct {
	problem framework.Problem
	options

	// optima is sorted by objectives and mutually non-dominated.
	optima []naiveEntry
}

var _ framework.Algorithm = &Naive{}

// NewNaive creates a Monte-Carlo optimizer with an empty non-dominated set.
func NewNaive(problem framework.Problem, opts ...Option) (*Naive, error) {
	if err := framework.ValidateProblem(problem); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	return &Naive{
		problem: problem,
		options: newOptions(NaiveName, opts),
	}, nil
}

func (o *Naive) Name() string {
	return NaiveName
}

// Len returns the number of points in the current non-dominated set.
func (o *Naive) Len() int {
	return len(o.optima)
}

// Optimize estimates the Pareto frontier by drawing the given number of
// samples. It can be called multiple times to further improve the estimate.
func (o *Naive) Optimize(rng framework.RandomGenerator, iterations int) {
	start := time.Now()
	n := o.problem.ParameterCount()
	m := o.problem.ObjectiveCount()

	x := make([]float64, n)
	y := make([]float64, m)

	accepted := 0
	for s := 0; s < iterations; s++ {
		for k := range x {
			x[k] = framework.Uniform(rng, o.problem.BoxMin(k), o.problem.BoxMax(k))
		}
		o.problem.Evaluate(x, y)

		if o.insert(y, x) {
			accepted++
		}
	}

	o.metrics.AddEvaluations(NaiveName, iterations)
	o.metrics.AddSamples(NaiveName, accepted, iterations-accepted)
	o.metrics.SetFrontierSize(NaiveName, len(o.optima))
	o.metrics.ObserveSince(NaiveName, start)
	o.logger.V(4).Info("Sampled problem", "iterations", iterations, "accepted", accepted, "frontierSize", len(o.optima))
}

// insert adds the point to the non-dominated set unless a stored point
// dominates it or has the same objectives. Stored points dominated by the new
// point are removed. The slices are copied on insertion.
func (o *Naive) insert(y, x []float64) bool {
	for _, e := range o.optima {
		if framework.Dominates(e.objectives, y) {
			return false
		}
	}

	kept := o.optima[:0]
	for _, e := range o.optima {
		if !framework.Dominates(y, e.objectives) {
			kept = append(kept, e)
		}
	}
	clear(o.optima[len(kept):])
	o.optima = kept

	pos, found := slices.BinarySearchFunc(o.optima, y, func(e naiveEntry, target []float64) int {
		return slices.Compare(e.objectives, target)
	})
	if found {
		return false
	}
	o.optima = slices.Insert(o.optima, pos, naiveEntry{
		objectives: slices.Clone(y),
		parameters: slices.Clone(x),
	})
	return true
}

// FrontierCast copies the estimated Pareto points into a frontier, in
// lexicographic order of their objectives.
func (o *Naive) FrontierCast() *framework.Frontier {
	frontier := framework.NewFrontier(len(o.optima), o.problem.ParameterCount(), o.problem.ObjectiveCount())
	for i, e := range o.optima {
		copy(frontier.Parameters(i), e.parameters)
		copy(frontier.Objectives(i), e.objectives)
	}
	return frontier
}

// NaiveOptimization creates a Monte-Carlo optimizer, runs it and returns the
// resulting frontier.
func NaiveOptimization(problem framework.Problem, rng framework.RandomGenerator, iterations int, opts ...Option) (*framework.Frontier, error) {
	optimizer, err := NewNaive(problem, opts...)
	if err != nil {
		return nil, err
	}
	optimizer.Optimize(rng, iterations)
	return optimizer.FrontierCast(), nil
}
