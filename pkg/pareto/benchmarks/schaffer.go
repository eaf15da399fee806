package benchmarks

import (
	"fmt"

	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

// Schaffer1 is the first problem of Schaffer: f(x) = (x^2, (x-2)^2) on [-a, a].
// Its Pareto set is the interval [0, 2].
type Schaffer1 struct {
	a float64
}

// NewSchaffer1 returns the problem on the box [-a, a]. The box has to contain
// the Pareto set, so a must be at least 2.
func NewSchaffer1(a float64) (*Schaffer1, error) {
	if a < 2 {
		return nil, fmt.Errorf("box half-width of Schaffer 1 has to be at least 2, got %v", a)
	}
	return &Schaffer1{a: a}, nil
}

func (p *Schaffer1) Name() string        { return "Schaffer1" }
func (p *Schaffer1) ParameterCount() int { return 1 }
func (p *Schaffer1) ObjectiveCount() int { return 2 }
func (p *Schaffer1) BoxMin(int) float64  { return -p.a }
func (p *Schaffer1) BoxMax(int) float64  { return p.a }

func (p *Schaffer1) Evaluate(x, y []float64) {
	y[0] = square(x[0])
	y[1] = square(x[0] - 2)
}

func (p *Schaffer1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := 2 * float64(i) / float64(max(numPoints-1, 1))
		points[i] = framework.ObjectiveSpacePoint{square(x), square(x - 2)}
	}
	return points
}

// Schaffer2 is the second problem of Schaffer with a piecewise linear first
// objective and a disconnected Pareto set [1, 2] ∪ [4, 5].
type Schaffer2 struct{}

func NewSchaffer2() *Schaffer2 {
	return &Schaffer2{}
}

func (p *Schaffer2) Name() string        { return "Schaffer2" }
func (p *Schaffer2) ParameterCount() int { return 1 }
func (p *Schaffer2) ObjectiveCount() int { return 2 }
func (p *Schaffer2) BoxMin(int) float64  { return -5 }
func (p *Schaffer2) BoxMax(int) float64  { return 10 }

func (p *Schaffer2) Evaluate(x, y []float64) {
	y[0] = schaffer2First(x[0])
	y[1] = square(x[0] - 5)
}

func schaffer2First(x float64) float64 {
	switch {
	case x <= 1:
		return -x
	case x <= 3:
		return x - 2
	case x <= 4:
		return 4 - x
	default:
		return x - 4
	}
}

func (p *Schaffer2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	// The first half of the points samples [1, 2], the second half [4, 5].
	half := numPoints / 2
	points := make([]framework.ObjectiveSpacePoint, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		var x float64
		if i < half {
			x = 1 + float64(i)/float64(max(half-1, 1))
		} else {
			x = 4 + float64(i-half)/float64(max(numPoints-half-1, 1))
		}
		points = append(points, framework.ObjectiveSpacePoint{schaffer2First(x), square(x - 5)})
	}
	return framework.NonDominated(points)
}

func square(x float64) float64 {
	return x * x
}
