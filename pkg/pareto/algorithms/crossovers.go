package algorithms

import (
	"math"

	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

const (
	// sbxDistributionIndex is the distribution index η of the simulated binary crossover.
	sbxDistributionIndex = 2.0
	// mutationStepSize is the maximal step of the alternate random mutation
	// relative to the width of the box.
	mutationStepSize = 0.1
)

// CrossoverFunc writes two offspring parameter vectors derived from two parents.
// Offspring may exceed the box constraints; the optimizer clamps them.
type CrossoverFunc func(rng framework.RandomGenerator, parent1, parent2, offspring1, offspring2 []float64)

// MutationFunc writes an offspring parameter vector derived from a single parent.
type MutationFunc func(rng framework.RandomGenerator, problem framework.Problem, parent, offspring []float64)

// SimulatedBinaryCrossover performs SBX independently for every parameter.
func SimulatedBinaryCrossover(rng framework.RandomGenerator, parent1, parent2, offspring1, offspring2 []float64) {
	const exponent = 1 / (sbxDistributionIndex + 1)
	for i := range parent1 {
		u := rng.Float64()
		var beta float64
		if u <= 0.5 {
			beta = math.Pow(2*u, exponent)
		} else {
			beta = math.Pow(1/(2*(1-u)), exponent)
		}

		x1 := 0.5 * ((1+beta)*parent1[i] + (1-beta)*parent2[i])
		x2 := 0.5 * ((1-beta)*parent1[i] + (1+beta)*parent2[i])
		offspring1[i] = x1
		offspring2[i] = x2
	}
}

// AlternateRandomMutation moves every parameter of the parent by a uniformly
// distributed step of at most a tenth of the box width.
func AlternateRandomMutation(rng framework.RandomGenerator, problem framework.Problem, parent, offspring []float64) {
	for k := range parent {
		step := framework.Uniform(rng, -1, 1)
		a, b := problem.BoxMin(k), problem.BoxMax(k)
		offspring[k] = parent[k] + step*mutationStepSize*(b-a)
	}
}

// PolynomialMutation returns a mutation operator that perturbs each parameter
// with the given probability using a polynomial distribution scaled to the box width.
// Parameters that are not mutated are copied from the parent.
func PolynomialMutation(rate float64) MutationFunc {
	const exponent = 1.0 / 3.0
	return func(rng framework.RandomGenerator, problem framework.Problem, parent, offspring []float64) {
		for k := range parent {
			offspring[k] = parent[k]
			if rng.Float64() >= rate {
				continue
			}
			var delta float64
			if u := rng.Float64(); u <= 0.5 {
				delta = math.Pow(2*u, exponent) - 1
			} else {
				delta = 1 - math.Pow(2*(1-u), exponent)
			}
			offspring[k] += delta * (problem.BoxMax(k) - problem.BoxMin(k))
		}
	}
}
