package framework

// Problem describes the contract a specific multi-objective problem needs to implement.
// Every objective is minimized. Implementations must be safe to copy and Evaluate
// must be deterministic for a given parameter vector.
type Problem interface {
	ParameterCount() int
	ObjectiveCount() int

	// BoxMin and BoxMax return the box constraints of the parameter at the given index.
	BoxMin(int) float64
	BoxMax(int) float64

	// Evaluate writes the objective values of the given parameters into objectives.
	// Callers guarantee len(parameters) == ParameterCount() and
	// len(objectives) == ObjectiveCount().
	Evaluate(parameters, objectives []float64)
}

// Benchmark is a Problem with a name and, when it is known, a true Pareto front.
type Benchmark interface {
	Problem

	Name() string

	// TrueParetoFront is optional due to the difficulty of finding the true front
	// in some types of problems. When there isn't a way to find the true front,
	// just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}

// Algorithm describes the contract that a MOO algorithm needs to implement.
type Algorithm interface {
	Name() string
	FrontierCast() *Frontier
}

// RandomGenerator is the source of randomness injected into every optimizer call.
// *rand.Rand from golang.org/x/exp/rand and math/rand both satisfy it.
type RandomGenerator interface {
	// Float64 returns a uniformly distributed number in [0, 1).
	Float64() float64
	// Intn returns a uniformly distributed number in [0, n).
	Intn(int) int
}

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64
