package algorithms

import (
	"cmp"
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/slices"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/pareto/pkg/api/v1alpha1"
	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

const (
	Name = "NSGA-II"
)

// NSGAII is the NSGA-II optimizer with a custom non-dominated sorting scheme,
// simulated binary crossovers and alternate random mutations.
//
// Individuals live in flat parameter and objective arrays that are never
// reordered. Sorting only touches the permutation array, whose end holds the
// best individuals: the last fronts[1] entries form the first front, the
// entries before them the second front, and so on.
type NSGAII struct {
	problem framework.Problem
	options

	n, m int
	// s is the population size.
	s int
	// selected is the number of individuals that survive a generation.
	selected       int
	iterations     int
	crossoverRatio float64

	parameters        []float64
	objectives        []float64
	permutation       []int
	crowdingDistances []float64
	fronts            []int

	// candidates holds the assumed Pareto points while peeling a front.
	candidates []int
}

var _ framework.Algorithm = &NSGAII{}

// NewNSGAII creates the optimizer, generates a random initial population and
// sorts it. Arguments are defaulted before validation.
func NewNSGAII(problem framework.Problem, rng framework.RandomGenerator, args v1alpha1.NSGAIIArgs, opts ...Option) (*NSGAII, error) {
	if err := framework.ValidateProblem(problem); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	v1alpha1.SetDefaults_NSGAIIArgs(&args)
	if err := v1alpha1.ValidateNSGAIIArgs(field.NewPath("nsga2"), &args).ToAggregate(); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	nsga := &NSGAII{
		problem:        problem,
		options:        newOptions(Name, opts),
		n:              problem.ParameterCount(),
		m:              problem.ObjectiveCount(),
		s:              args.PopulationSize,
		selected:       args.Select(),
		iterations:     args.Iterations,
		crossoverRatio: ptr.Deref(args.CrossoverRatio, v1alpha1.DefaultCrossoverRatio),
	}
	nsga.parameters = make([]float64, nsga.n*nsga.s)
	nsga.objectives = make([]float64, nsga.m*nsga.s)
	nsga.permutation = make([]int, nsga.s)
	nsga.crowdingDistances = make([]float64, nsga.s)
	nsga.fronts = make([]int, 0, nsga.s+1)
	nsga.candidates = make([]int, 0, nsga.s)

	nsga.logger.V(2).Info("Starting evolution",
		"populationSize", nsga.s,
		"select", nsga.selected,
		"iterations", nsga.iterations,
		"crossoverRatio", nsga.crossoverRatio)

	nsga.initPopulation(rng)
	return nsga, nil
}

func (nsga *NSGAII) Name() string {
	return Name
}

// PopulationSize returns the number of individuals.
func (nsga *NSGAII) PopulationSize() int {
	return nsga.s
}

// Select returns the number of individuals kept alive in every generation.
func (nsga *NSGAII) Select() int {
	return nsga.selected
}

// Fronts returns a copy of the cumulative front boundaries of the last sort,
// counted from the best end of the permutation. The first element is always 0.
func (nsga *NSGAII) Fronts() []int {
	return slices.Clone(nsga.fronts)
}

// Permutation returns a copy of the current ordering of individual indices.
func (nsga *NSGAII) Permutation() []int {
	return slices.Clone(nsga.permutation)
}

// CrowdingDistance returns the last computed crowding distance of an individual.
func (nsga *NSGAII) CrowdingDistance(individual int) float64 {
	return nsga.crowdingDistances[individual]
}

// Individual returns views of the parameters and objectives of an individual.
func (nsga *NSGAII) Individual(index int) (parameters, objectives []float64) {
	return nsga.parametersOf(index), nsga.objectivesOf(index)
}

func (nsga *NSGAII) parametersOf(index int) []float64 {
	return nsga.parameters[nsga.n*index : nsga.n*(index+1) : nsga.n*(index+1)]
}

func (nsga *NSGAII) objectivesOf(index int) []float64 {
	return nsga.objectives[nsga.m*index : nsga.m*(index+1) : nsga.m*(index+1)]
}

// clamp limits the parameters of the given individual to the box constraints.
func (nsga *NSGAII) clamp(index int) {
	x := nsga.parametersOf(index)
	for i := range x {
		x[i] = framework.Clamp(x[i], nsga.problem.BoxMin(i), nsga.problem.BoxMax(i))
	}
}

func (nsga *NSGAII) evaluate(index int) {
	nsga.problem.Evaluate(nsga.parametersOf(index), nsga.objectivesOf(index))
}

// initPopulation generates uniformly distributed individuals and pre-sorts them.
func (nsga *NSGAII) initPopulation(rng framework.RandomGenerator) {
	for i := 0; i < nsga.s; i++ {
		x := nsga.parametersOf(i)
		for j := range x {
			x[j] = framework.Uniform(rng, nsga.problem.BoxMin(j), nsga.problem.BoxMax(j))
		}
		nsga.evaluate(i)
	}
	nsga.metrics.AddEvaluations(Name, nsga.s)

	nsga.nonDominatedSort()
	nsga.crowdingDistanceSort()
}

// nonDominatedSort sorts the population into layers of domination. Fronts are
// peeled until they contain at least the selected number of individuals; the
// remaining individuals stay unranked at the beginning of the permutation.
func (nsga *NSGAII) nonDominatedSort() {
	for i := range nsga.permutation {
		nsga.permutation[i] = i
	}
	nsga.fronts = append(nsga.fronts[:0], 0)

	for nsga.fronts[len(nsga.fronts)-1] < nsga.selected {
		ranked := nsga.fronts[len(nsga.fronts)-1]
		nsga.candidates = append(nsga.candidates[:0], nsga.permutation[0])

		// front counts the dominated individuals parked at the beginning.
		front := 0
		for i := 1; i < nsga.s-ranked; i++ {
			index := nsga.permutation[i]
			p := nsga.objectivesOf(index)

			dominated := false
			for _, j := range nsga.candidates {
				if framework.Dominates(nsga.objectivesOf(j), p) {
					dominated = true
					break
				}
			}
			if dominated {
				nsga.permutation[front] = index
				front++
				continue
			}

			kept := nsga.candidates[:0]
			for _, j := range nsga.candidates {
				if framework.Dominates(p, nsga.objectivesOf(j)) {
					nsga.permutation[front] = j
					front++
				} else {
					kept = append(kept, j)
				}
			}
			nsga.candidates = append(kept, index)
		}

		// Dominated individuals are visited in reverse order by the next pass.
		slices.Reverse(nsga.permutation[:front])

		for _, j := range nsga.candidates {
			nsga.permutation[front] = j
			front++
		}
		nsga.fronts = append(nsga.fronts, ranked+len(nsga.candidates))
	}
	nsga.metrics.SetFronts(Name, len(nsga.fronts)-1)
}

// crowdingDistanceSort computes the crowding distance of the last sorted front,
// the one straddling the selection boundary, and orders it ascending by that
// distance so that the least crowded individuals end up on the surviving side.
func (nsga *NSGAII) crowdingDistanceSort() {
	k := len(nsga.fronts)
	if nsga.fronts[k-1] == nsga.selected {
		return
	}

	first := nsga.s - nsga.fronts[k-1]
	last := nsga.s - nsga.fronts[k-2]
	members := nsga.permutation[first:last]

	for _, index := range members {
		nsga.crowdingDistances[index] = 0
	}

	inf := math.Inf(1)
	for v := 0; v < nsga.m; v++ {
		slices.SortStableFunc(members, func(x, y int) int {
			return cmp.Compare(nsga.objectives[nsga.m*x+v], nsga.objectives[nsga.m*y+v])
		})

		// Boundary points are never discarded.
		nsga.crowdingDistances[members[0]] = inf
		nsga.crowdingDistances[members[len(members)-1]] = inf

		span := nsga.objectives[nsga.m*members[len(members)-1]+v] - nsga.objectives[nsga.m*members[0]+v]
		// Members are sorted by v, so each neighbor gap lies within span and the
		// added term is in [0, 1] for any nonzero span.
		if span == 0 {
			continue
		}
		for i := 1; i < len(members)-1; i++ {
			nsga.crowdingDistances[members[i]] +=
				(nsga.objectives[nsga.m*members[i+1]+v] - nsga.objectives[nsga.m*members[i-1]+v]) / span
		}
	}

	slices.SortStableFunc(members, func(x, y int) int {
		return cmp.Compare(nsga.crowdingDistances[x], nsga.crowdingDistances[y])
	})
}

// populate discards the worst part of the population and fills it up again
// by crossovers and mutations of randomly chosen survivors.
func (nsga *NSGAII) populate(rng framework.RandomGenerator) {
	// Survivors are stored at the end of the permutation.
	parent := func() int {
		return nsga.permutation[nsga.s-nsga.selected+rng.Intn(nsga.selected)]
	}

	count := nsga.s - nsga.selected
	crossoverCount := 2 * int(nsga.crossoverRatio*float64(count/2))

	i := 0
	for ; i < crossoverCount; i += 2 {
		parent1, parent2 := parent(), parent()
		offspring1, offspring2 := nsga.permutation[i], nsga.permutation[i+1]

		nsga.crossover(rng,
			nsga.parametersOf(parent1), nsga.parametersOf(parent2),
			nsga.parametersOf(offspring1), nsga.parametersOf(offspring2))
		nsga.clamp(offspring1)
		nsga.clamp(offspring2)
		nsga.evaluate(offspring1)
		nsga.evaluate(offspring2)
	}

	for ; i < count; i++ {
		p := parent()
		offspring := nsga.permutation[i]

		nsga.mutation(rng, nsga.problem, nsga.parametersOf(p), nsga.parametersOf(offspring))
		nsga.clamp(offspring)
		nsga.evaluate(offspring)
	}
	nsga.metrics.AddEvaluations(Name, count)
}

// Optimize evolves the population for the given number of generations. It can
// be called multiple times to further improve the estimate.
func (nsga *NSGAII) Optimize(rng framework.RandomGenerator, iterations int) {
	start := time.Now()
	for gen := 0; gen < iterations; gen++ {
		nsga.populate(rng)
		nsga.nonDominatedSort()
		nsga.crowdingDistanceSort()

		if loggerV := nsga.logger.V(5); loggerV.Enabled() {
			loggerV.Info("Generation sorted", "generation", gen+1, "fronts", len(nsga.fronts)-1, "firstFront", nsga.fronts[1])
		}
	}

	nsga.metrics.AddGenerations(Name, iterations)
	nsga.metrics.SetFrontierSize(Name, nsga.fronts[1])
	nsga.metrics.ObserveSince(Name, start)
	nsga.logger.V(4).Info("Evolution complete",
		"generations", iterations,
		"firstFront", nsga.fronts[1],
		"elapsed", time.Since(start))
}

// Run evolves the population for the configured number of iterations.
func (nsga *NSGAII) Run(rng framework.RandomGenerator) {
	nsga.Optimize(rng, nsga.iterations)
}

// FrontierCast copies the first front of the last sort into a frontier,
// starting with the best end of the permutation.
func (nsga *NSGAII) FrontierCast() *framework.Frontier {
	count := nsga.fronts[1]
	frontier := framework.NewFrontier(count, nsga.n, nsga.m)
	for i := 0; i < count; i++ {
		index := nsga.permutation[nsga.s-1-i]
		copy(frontier.Parameters(i), nsga.parametersOf(index))
		copy(frontier.Objectives(i), nsga.objectivesOf(index))
	}
	return frontier
}

// NSGAIIOptimization creates an NSGA-II optimizer, runs it for the configured
// number of iterations and returns the resulting frontier.
func NSGAIIOptimization(problem framework.Problem, rng framework.RandomGenerator, args v1alpha1.NSGAIIArgs, opts ...Option) (*framework.Frontier, error) {
	nsga, err := NewNSGAII(problem, rng, args, opts...)
	if err != nil {
		return nil, err
	}
	nsga.Run(rng)
	return nsga.FrontierCast(), nil
}
