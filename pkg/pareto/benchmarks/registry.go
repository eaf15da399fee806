package benchmarks

import (
	"fmt"

	"golang.org/x/exp/slices"

	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

// Factory builds a benchmark problem. A dimension of zero selects the default
// parameter count; problems with a fixed parameter count ignore it.
type Factory func(dimension int) (framework.Benchmark, error)

// Registry maps gallery names to problem factories.
type Registry map[string]Factory

// NewRegistry returns a registry holding every problem of the gallery.
func NewRegistry() Registry {
	return Registry{
		"identity":       scalable(2, 1, func(n int) framework.Benchmark { return NewIdentity(n) }),
		"tradeoff":       fixed(NewTradeoff()),
		"schaffer1":      func(int) (framework.Benchmark, error) { return NewSchaffer1(10) },
		"schaffer2":      fixed(NewSchaffer2()),
		"zdt1":           scalable(30, 2, func(n int) framework.Benchmark { return NewZDT1(n) }),
		"zdt2":           scalable(30, 2, func(n int) framework.Benchmark { return NewZDT2(n) }),
		"zdt3":           scalable(30, 2, func(n int) framework.Benchmark { return NewZDT3(n) }),
		"zdt4":           scalable(10, 2, func(n int) framework.Benchmark { return NewZDT4(n) }),
		"zdt6":           scalable(10, 2, func(n int) framework.Benchmark { return NewZDT6(n) }),
		"dtlz1":          scalable(6, 2, func(n int) framework.Benchmark { return NewDTLZ1(n, 2) }),
		"dtlz2":          scalable(11, 2, func(n int) framework.Benchmark { return NewDTLZ2(n, 2) }),
		"fonsecafleming": scalable(3, 1, func(n int) framework.Benchmark { return NewFonsecaFleming(n) }),
		"poloni":         fixed(NewPoloni()),
		"kursawe":        fixed(NewKursawe()),
		"viennet":        fixed(NewViennet()),
	}
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup builds the named problem.
func (r Registry) Lookup(name string, dimension int) (framework.Benchmark, error) {
	factory, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem %q, known problems are %v", name, r.Names())
	}
	if dimension < 0 {
		return nil, fmt.Errorf("dimension of problem %q must not be negative, got %d", name, dimension)
	}
	problem, err := factory(dimension)
	if err != nil {
		return nil, err
	}
	if err := framework.ValidateProblem(problem); err != nil {
		return nil, fmt.Errorf("invalid problem %q: %w", name, err)
	}
	return problem, nil
}

func fixed(p framework.Benchmark) Factory {
	return func(int) (framework.Benchmark, error) {
		return p, nil
	}
}

func scalable(defaultDimension, minDimension int, build func(int) framework.Benchmark) Factory {
	return func(dimension int) (framework.Benchmark, error) {
		if dimension == 0 {
			dimension = defaultDimension
		}
		if dimension < minDimension {
			return nil, fmt.Errorf("problem needs at least %d parameters, got %d", minDimension, dimension)
		}
		return build(dimension), nil
	}
}
