package benchmarks

import (
	"math"

	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

// dtlz holds what the Deb-Thiele-Laumanns-Zitzler problems share. They are
// scalable to any number of objectives.
type dtlz struct {
	numVars       int
	numObjectives int
}

func (p *dtlz) ParameterCount() int { return p.numVars }
func (p *dtlz) ObjectiveCount() int { return p.numObjectives }
func (p *dtlz) BoxMin(int) float64  { return 0 }
func (p *dtlz) BoxMax(int) float64  { return 1 }

// DTLZ1 has a linear Pareto front and many local fronts
type DTLZ1 struct {
	dtlz
}

func NewDTLZ1(numVars, numObjectives int) *DTLZ1 {
	// Recommended: numVars = numObjectives + k - 1, where k = 5 for DTLZ1
	return &DTLZ1{dtlz{numVars: numVars, numObjectives: numObjectives}}
}

func (p *DTLZ1) Name() string {
	return "DTLZ1"
}

func (p *DTLZ1) g(x []float64) float64 {
	k := p.numVars - p.numObjectives + 1
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2) - math.Cos(20*math.Pi*(x[i]-0.5))
	}
	return 100 * (float64(k) + sum)
}

func (p *DTLZ1) Evaluate(x, y []float64) {
	g := p.g(x)
	for objIdx := range y {
		f := 0.5 * (1 + g)
		for i := 0; i < p.numObjectives-objIdx-1; i++ {
			f *= x[i]
		}
		if objIdx > 0 {
			f *= 1 - x[p.numObjectives-objIdx-1]
		}
		y[objIdx] = f
	}
}

func (p *DTLZ1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	// For DTLZ1, the true Pareto front satisfies: sum(f_i) = 0.5
	// For 2 objectives, it's a line from (0, 0.5) to (0.5, 0)
	if p.numObjectives == 2 {
		return linearFront(numPoints, 0.5)
	}
	// For higher dimensions, return nil as it's complex to generate
	return nil
}

// DTLZ2 has a spherical Pareto front
// It's easier than DTLZ1 as it has no local fronts
type DTLZ2 struct {
	dtlz
}

func NewDTLZ2(numVars, numObjectives int) *DTLZ2 {
	// Recommended: numVars = numObjectives + k - 1, where k = 10 for DTLZ2
	return &DTLZ2{dtlz{numVars: numVars, numObjectives: numObjectives}}
}

func (p *DTLZ2) Name() string {
	return "DTLZ2"
}

func (p *DTLZ2) g(x []float64) float64 {
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2)
	}
	return sum
}

func (p *DTLZ2) Evaluate(x, y []float64) {
	g := p.g(x)
	for objIdx := range y {
		f := 1 + g
		// Product of cos terms
		for i := 0; i < p.numObjectives-objIdx-1; i++ {
			f *= math.Cos(x[i] * math.Pi / 2)
		}
		// Last term is sin for all objectives except the first
		if objIdx > 0 {
			f *= math.Sin(x[p.numObjectives-objIdx-1] * math.Pi / 2)
		}
		y[objIdx] = f
	}
}

func (p *DTLZ2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	// Quarter circle of radius 1 for two objectives
	if p.numObjectives != 2 {
		return nil
	}
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		theta := float64(i) / float64(max(numPoints-1, 1)) * math.Pi / 2
		points[i] = framework.ObjectiveSpacePoint{math.Cos(theta), math.Sin(theta)}
	}
	return points
}
