package algorithms_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"k8s.io/klog/v2/ktesting"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/pareto/pkg/api/v1alpha1"
	"sigs.k8s.io/pareto/pkg/pareto/algorithms"
	"sigs.k8s.io/pareto/pkg/pareto/benchmarks"
	"sigs.k8s.io/pareto/pkg/pareto/framework"
	"sigs.k8s.io/pareto/pkg/pareto/metrics"
)

func nsgaArgs(population, iterations int) v1alpha1.NSGAIIArgs {
	return v1alpha1.NSGAIIArgs{
		Iterations:     iterations,
		PopulationSize: population,
		KillRatio:      ptr.To(0.5),
		CrossoverRatio: ptr.To(0.3),
	}
}

// checkSorted verifies the ranking bookkeeping of the last non-dominated sort.
func checkSorted(t *testing.T, nsga *algorithms.NSGAII) {
	t.Helper()
	s, selected := nsga.PopulationSize(), nsga.Select()
	fronts := nsga.Fronts()
	perm := nsga.Permutation()

	if len(fronts) < 2 || fronts[0] != 0 {
		t.Fatalf("fronts = %v, want a leading 0 and at least one front", fronts)
	}
	for i := 1; i < len(fronts); i++ {
		if fronts[i] <= fronts[i-1] {
			t.Fatalf("fronts = %v are not strictly increasing", fronts)
		}
	}
	if k := len(fronts); fronts[k-2] >= selected || fronts[k-1] < selected || fronts[k-1] > s {
		t.Fatalf("fronts = %v do not straddle select = %d", fronts, selected)
	}

	seen := make([]bool, s)
	for _, index := range perm {
		if index < 0 || index >= s || seen[index] {
			t.Fatalf("permutation %v is not a permutation of [0, %d)", perm, s)
		}
		seen[index] = true
	}

	objectives := func(position int) []float64 {
		_, y := nsga.Individual(perm[position])
		return y
	}
	// No individual of front k is dominated by anything outside of the better fronts.
	for k := 1; k < len(fronts); k++ {
		for pos := s - fronts[k]; pos < s-fronts[k-1]; pos++ {
			for other := 0; other < s-fronts[k-1]; other++ {
				if framework.Dominates(objectives(other), objectives(pos)) {
					t.Fatalf("front %d member at %d is dominated by the individual at %d", k, pos, other)
				}
			}
		}
	}
}

// checkCrowding verifies the crowding distances of the front straddling the
// selection boundary.
func checkCrowding(t *testing.T, nsga *algorithms.NSGAII, objectiveCount int) {
	t.Helper()
	s, selected := nsga.PopulationSize(), nsga.Select()
	fronts := nsga.Fronts()
	k := len(fronts)
	if fronts[k-1] == selected {
		return
	}
	perm := nsga.Permutation()
	members := perm[s-fronts[k-1] : s-fronts[k-2]]

	previous := math.Inf(-1)
	for pos, index := range members {
		d := nsga.CrowdingDistance(index)
		if math.IsNaN(d) || d < 0 {
			t.Fatalf("crowding distance %v of member %d is not a non-negative number", d, pos)
		}
		// Every objective adds at most one normalized neighbor gap.
		if !math.IsInf(d, 1) && d > float64(objectiveCount) {
			t.Fatalf("interior crowding distance %v of member %d exceeds %d", d, pos, objectiveCount)
		}
		if d < previous {
			t.Fatalf("crowding distances are not ascending at %d: %v after %v", pos, d, previous)
		}
		previous = d
	}

	// Both extremes of every objective are boundary points.
	for v := 0; v < objectiveCount; v++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, index := range members {
			_, y := nsga.Individual(index)
			lo, hi = math.Min(lo, y[v]), math.Max(hi, y[v])
		}
		loInf, hiInf := false, false
		for _, index := range members {
			_, y := nsga.Individual(index)
			inf := math.IsInf(nsga.CrowdingDistance(index), 1)
			loInf = loInf || (y[v] == lo && inf)
			hiInf = hiInf || (y[v] == hi && inf)
		}
		if !loInf || !hiInf {
			t.Errorf("objective %d: minimum %v or maximum %v of the boundary front has a finite crowding distance", v, lo, hi)
		}
	}
}

func TestNSGAIIInvariants(t *testing.T) {
	logger, _ := ktesting.NewTestContext(t)
	tests := []struct {
		name    string
		problem framework.Problem
		args    v1alpha1.NSGAIIArgs
	}{
		{name: "ZDT1", problem: benchmarks.NewZDT1(10), args: nsgaArgs(100, 20)},
		{name: "FonsecaFleming", problem: benchmarks.NewFonsecaFleming(3), args: nsgaArgs(64, 10)},
		{name: "Viennet", problem: benchmarks.NewViennet(), args: nsgaArgs(50, 10)},
		{name: "DTLZ2 3 objectives", problem: benchmarks.NewDTLZ2(12, 3), args: nsgaArgs(80, 10)},
		{name: "small population", problem: benchmarks.NewSchaffer2(), args: nsgaArgs(4, 10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := newRand(11)
			nsga, err := algorithms.NewNSGAII(tc.problem, rng, tc.args, algorithms.WithLogger(logger))
			if err != nil {
				t.Fatalf("NewNSGAII() error = %v", err)
			}
			m := tc.problem.ObjectiveCount()
			checkSorted(t, nsga)
			checkCrowding(t, nsga, m)

			for i := 0; i < tc.args.Iterations; i++ {
				nsga.Optimize(rng, 1)
				checkSorted(t, nsga)
				checkCrowding(t, nsga, m)
			}

			frontier := nsga.FrontierCast()
			checkFrontier(t, frontier)
			if got, want := frontier.SampleCount(), nsga.Fronts()[1]; got != want {
				t.Errorf("SampleCount() = %d, want the first front size %d", got, want)
			}
		})
	}
}

// flatTradeoff trades off its first two objectives and keeps the third constant.
type flatTradeoff struct{}

func (flatTradeoff) ParameterCount() int { return 1 }
func (flatTradeoff) ObjectiveCount() int { return 3 }
func (flatTradeoff) BoxMin(int) float64  { return 0 }
func (flatTradeoff) BoxMax(int) float64  { return 1 }
func (flatTradeoff) Evaluate(x, y []float64) {
	y[0] = x[0]
	y[1] = 1 - x[0]
	y[2] = 7
}

func TestNSGAIICrowdingWithConstantObjective(t *testing.T) {
	rng := newRand(18)
	nsga, err := algorithms.NewNSGAII(flatTradeoff{}, rng, nsgaArgs(20, 10))
	if err != nil {
		t.Fatalf("NewNSGAII() error = %v", err)
	}

	for gen := 0; gen <= 10; gen++ {
		if gen > 0 {
			nsga.Optimize(rng, 1)
		}
		// Nothing dominates anything, so the single front straddles the boundary.
		if diff := cmp.Diff([]int{0, 20}, nsga.Fronts()); diff != "" {
			t.Fatalf("generation %d: fronts mismatch (-want +got):\n%s", gen, diff)
		}
		checkCrowding(t, nsga, 3)

		// The constant objective has zero span and adds no boundary points of its
		// own: unbounded individuals sit at an extreme of the trade-off.
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < nsga.PopulationSize(); i++ {
			_, y := nsga.Individual(i)
			lo, hi = math.Min(lo, y[0]), math.Max(hi, y[0])
		}
		infs := 0
		for i := 0; i < nsga.PopulationSize(); i++ {
			_, y := nsga.Individual(i)
			d := nsga.CrowdingDistance(i)
			switch {
			case math.IsInf(d, 1):
				infs++
				if y[0] != lo && y[0] != hi {
					t.Errorf("generation %d: individual %d at %v is unbounded but not extreme", gen, i, y)
				}
			case math.IsNaN(d) || d < 0 || d > 2:
				t.Fatalf("generation %d: crowding distance of individual %d = %v", gen, i, d)
			}
		}
		if infs < 2 {
			t.Errorf("generation %d: %d individuals with infinite crowding distance, want at least 2", gen, infs)
		}
	}
}

func TestNSGAIIFrontierCastCopiesBestEnd(t *testing.T) {
	rng := newRand(12)
	nsga, err := algorithms.NewNSGAII(benchmarks.NewZDT2(5), rng, nsgaArgs(40, 5))
	if err != nil {
		t.Fatal(err)
	}
	nsga.Run(rng)

	frontier := nsga.FrontierCast()
	perm := nsga.Permutation()
	for i := 0; i < frontier.SampleCount(); i++ {
		x, y := nsga.Individual(perm[len(perm)-1-i])
		if !cmp.Equal(frontier.Parameters(i), x) || !cmp.Equal(frontier.Objectives(i), y) {
			t.Fatalf("sample %d = %v/%v, want %v/%v", i, frontier.Parameters(i), frontier.Objectives(i), x, y)
		}
	}

	// The frontier is a copy.
	frontier.Objectives(0)[0] = -1
	if _, y := nsga.Individual(perm[len(perm)-1]); y[0] == -1 {
		t.Error("writing to the frontier changed the population")
	}
}

func TestNSGAIIIsDeterministic(t *testing.T) {
	schaffer1, err := benchmarks.NewSchaffer1(5)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		problem framework.Problem
		args    v1alpha1.NSGAIIArgs
	}{
		{name: "Schaffer1", problem: schaffer1, args: nsgaArgs(100, 50)},
		{name: "ZDT3", problem: benchmarks.NewZDT3(8), args: nsgaArgs(60, 15)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			run := func() *framework.Frontier {
				frontier, err := algorithms.NSGAIIOptimization(tc.problem, newRand(13), tc.args)
				if err != nil {
					t.Fatal(err)
				}
				return frontier
			}
			first, second := run(), run()
			if first.SampleCount() != second.SampleCount() {
				t.Fatalf("frontier sizes differ: %d and %d", first.SampleCount(), second.SampleCount())
			}
			if diff := cmp.Diff(first.ParametersFrom(0), second.ParametersFrom(0)); diff != "" {
				t.Errorf("parameters of runs with equal seeds differ (-first +second):\n%s", diff)
			}
			if diff := cmp.Diff(first.ObjectivesFrom(0), second.ObjectivesFrom(0)); diff != "" {
				t.Errorf("objectives of runs with equal seeds differ (-first +second):\n%s", diff)
			}
		})
	}
}

func TestNSGAIIZeroIterationsKeepsPopulation(t *testing.T) {
	rng := newRand(14)
	nsga, err := algorithms.NewNSGAII(benchmarks.NewZDT1(4), rng, nsgaArgs(20, 5))
	if err != nil {
		t.Fatal(err)
	}
	before := nsga.FrontierCast()
	nsga.Optimize(rng, 0)
	after := nsga.FrontierCast()
	if diff := cmp.Diff(before.ObjectivesFrom(0), after.ObjectivesFrom(0)); diff != "" {
		t.Errorf("zero iterations changed the frontier (-before +after):\n%s", diff)
	}
}

func TestNSGAIISchaffer1Converges(t *testing.T) {
	problem, err := benchmarks.NewSchaffer1(5)
	if err != nil {
		t.Fatal(err)
	}
	frontier, err := algorithms.NSGAIIOptimization(problem, newRand(15), nsgaArgs(100, 100))
	if err != nil {
		t.Fatal(err)
	}
	if frontier.SampleCount() < 10 {
		t.Errorf("SampleCount() = %d, want a well populated front", frontier.SampleCount())
	}
	for i := 0; i < frontier.SampleCount(); i++ {
		if x := frontier.Parameters(i)[0]; x < -0.25 || x > 2.25 {
			t.Errorf("sample %d at x = %v is far from the Pareto set [0, 2]", i, x)
		}
	}
	if igd := benchmarks.IGD(frontier.Points(), problem.TrueParetoFront(500)); igd > 0.1 {
		t.Errorf("IGD = %v, want at most 0.1", igd)
	}
}

func TestNSGAIIRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		problem framework.Problem
		args    v1alpha1.NSGAIIArgs
	}{
		{name: "nil problem", problem: nil, args: nsgaArgs(10, 1)},
		{name: "population of one", problem: benchmarks.NewZDT1(3), args: nsgaArgs(1, 1)},
		{name: "kill everything", problem: benchmarks.NewZDT1(3), args: v1alpha1.NSGAIIArgs{PopulationSize: 10, KillRatio: ptr.To(1.0)}},
		{name: "negative iterations", problem: benchmarks.NewZDT1(3), args: nsgaArgs(10, -1)},
		{name: "crossover ratio above one", problem: benchmarks.NewZDT1(3), args: v1alpha1.NSGAIIArgs{PopulationSize: 10, CrossoverRatio: ptr.To(1.5)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := algorithms.NewNSGAII(tc.problem, newRand(1), tc.args); err == nil {
				t.Error("NewNSGAII() should fail")
			}
		})
	}
}

func TestNSGAIIOperatorCounts(t *testing.T) {
	crossovers, mutations := 0, 0
	countingCrossover := func(rng framework.RandomGenerator, p1, p2, o1, o2 []float64) {
		crossovers++
		algorithms.SimulatedBinaryCrossover(rng, p1, p2, o1, o2)
	}
	countingMutation := func(rng framework.RandomGenerator, problem framework.Problem, p, o []float64) {
		mutations++
		algorithms.AlternateRandomMutation(rng, problem, p, o)
	}

	// 10 individuals, 5 survive: 4 offspring by crossover pairs and 1 by mutation.
	args := v1alpha1.NSGAIIArgs{
		Iterations:     3,
		PopulationSize: 10,
		KillRatio:      ptr.To(0.5),
		CrossoverRatio: ptr.To(1.0),
	}
	if _, err := algorithms.NSGAIIOptimization(benchmarks.NewZDT1(3), newRand(16), args,
		algorithms.WithCrossover(countingCrossover), algorithms.WithMutation(countingMutation)); err != nil {
		t.Fatal(err)
	}
	if crossovers != 6 || mutations != 3 {
		t.Errorf("crossovers = %d, mutations = %d, want 6 and 3", crossovers, mutations)
	}
}

func TestNSGAIIRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := algorithms.NSGAIIOptimization(benchmarks.NewZDT1(3), newRand(17), nsgaArgs(20, 4), algorithms.WithMetrics(m)); err != nil {
		t.Fatal(err)
	}

	// 20 initial evaluations and 10 replaced individuals per generation.
	expected := `
# HELP pareto_evaluations_total Number of problem evaluations.
# TYPE pareto_evaluations_total counter
pareto_evaluations_total{algorithm="NSGA-II"} 60
# HELP pareto_generations_total Number of evolved generations.
# TYPE pareto_generations_total counter
pareto_generations_total{algorithm="NSGA-II"} 4
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "pareto_evaluations_total", "pareto_generations_total"); err != nil {
		t.Error(err)
	}
}
