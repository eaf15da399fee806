package algorithms

import (
	"fmt"

	"sigs.k8s.io/pareto/pkg/api/v1alpha1"
	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

// Optimization runs the algorithm selected by the run arguments on the given
// problem and returns the estimated frontier. Arguments must be defaulted.
func Optimization(problem framework.Problem, rng framework.RandomGenerator, args *v1alpha1.RunArgs, opts ...Option) (*framework.Frontier, error) {
	switch args.Algorithm {
	case v1alpha1.AlgorithmNSGAII:
		return NSGAIIOptimization(problem, rng, args.NSGAII, opts...)
	case v1alpha1.AlgorithmNaive:
		return NaiveOptimization(problem, rng, args.Naive.Iterations, opts...)
	default:
		return nil, fmt.Errorf("unknown algorithm %q", args.Algorithm)
	}
}

// AlgorithmName returns the display name of the algorithm selected by the run arguments.
func AlgorithmName(algorithm string) string {
	switch algorithm {
	case v1alpha1.AlgorithmNSGAII:
		return Name
	case v1alpha1.AlgorithmNaive:
		return NaiveName
	}
	return algorithm
}
