package benchmarks

import (
	"math"

	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

// FonsecaFleming has a concave Pareto front that is the image of the
// diagonal x_i = t with |t| <= 1/sqrt(n).
type FonsecaFleming struct {
	numVars int
}

func NewFonsecaFleming(numVars int) *FonsecaFleming {
	return &FonsecaFleming{numVars: numVars}
}

func (p *FonsecaFleming) Name() string        { return "FonsecaFleming" }
func (p *FonsecaFleming) ParameterCount() int { return p.numVars }
func (p *FonsecaFleming) ObjectiveCount() int { return 2 }
func (p *FonsecaFleming) BoxMin(int) float64  { return -4 }
func (p *FonsecaFleming) BoxMax(int) float64  { return 4 }

func (p *FonsecaFleming) Evaluate(x, y []float64) {
	shift := 1 / math.Sqrt(float64(len(x)))
	plus, minus := 0.0, 0.0
	for _, v := range x {
		plus += square(v - shift)
		minus += square(v + shift)
	}
	y[0] = 1 - math.Exp(-plus)
	y[1] = 1 - math.Exp(-minus)
}

func (p *FonsecaFleming) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	bound := 1 / math.Sqrt(float64(p.numVars))
	x := make([]float64, p.numVars)
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		t := framework.Lerp(-bound, bound, float64(i)/float64(max(numPoints-1, 1)))
		for j := range x {
			x[j] = t
		}
		y := make(framework.ObjectiveSpacePoint, 2)
		p.Evaluate(x, y)
		points[i] = y
	}
	return points
}

// Poloni is a two-parameter problem with a disconnected Pareto front.
type Poloni struct{}

func NewPoloni() *Poloni {
	return &Poloni{}
}

func (p *Poloni) Name() string        { return "Poloni" }
func (p *Poloni) ParameterCount() int { return 2 }
func (p *Poloni) ObjectiveCount() int { return 2 }
func (p *Poloni) BoxMin(int) float64  { return -math.Pi }
func (p *Poloni) BoxMax(int) float64  { return math.Pi }

func (p *Poloni) Evaluate(x, y []float64) {
	a1, a2 := poloniTerms(1, 2)
	b1, b2 := poloniTerms(x[0], x[1])
	y[0] = 1 + square(a1-b1) + square(a2-b2)
	y[1] = square(x[0]+3) + square(x[1]+1)
}

func poloniTerms(u, v float64) (float64, float64) {
	return 0.5*math.Sin(u) - 2*math.Cos(u) + math.Sin(v) - 1.5*math.Cos(v),
		1.5*math.Sin(u) - math.Cos(u) + 2*math.Sin(v) - 0.5*math.Cos(v)
}

// TrueParetoFront has no closed form for Poloni.
func (p *Poloni) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return nil
}

// Kursawe is a three-parameter problem with a disconnected, non-convex front.
type Kursawe struct{}

func NewKursawe() *Kursawe {
	return &Kursawe{}
}

func (p *Kursawe) Name() string        { return "Kursawe" }
func (p *Kursawe) ParameterCount() int { return 3 }
func (p *Kursawe) ObjectiveCount() int { return 2 }
func (p *Kursawe) BoxMin(int) float64  { return -5 }
func (p *Kursawe) BoxMax(int) float64  { return 5 }

func (p *Kursawe) Evaluate(x, y []float64) {
	y[0] = 0
	for i := 0; i < len(x)-1; i++ {
		y[0] += -10 * math.Exp(-0.2*math.Sqrt(x[i]*x[i]+x[i+1]*x[i+1]))
	}
	y[1] = 0
	for _, v := range x {
		y[1] += math.Pow(math.Abs(v), 0.8) + 5*math.Sin(v*v*v)
	}
}

// TrueParetoFront has no closed form for Kursawe.
func (p *Kursawe) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return nil
}

// Viennet is a two-parameter problem with three objectives.
type Viennet struct{}

func NewViennet() *Viennet {
	return &Viennet{}
}

func (p *Viennet) Name() string        { return "Viennet" }
func (p *Viennet) ParameterCount() int { return 2 }
func (p *Viennet) ObjectiveCount() int { return 3 }
func (p *Viennet) BoxMin(int) float64  { return -3 }
func (p *Viennet) BoxMax(int) float64  { return 3 }

func (p *Viennet) Evaluate(x, y []float64) {
	r := x[0]*x[0] + x[1]*x[1]
	y[0] = 0.5*r + math.Sin(r)
	y[1] = square(3*x[0]-2*x[1]+4)/8 + square(x[0]-x[1]+1)/27 + 15
	y[2] = 1/(r+1) - 1.1*math.Exp(-r)
}

// TrueParetoFront has no closed form for Viennet.
func (p *Viennet) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return nil
}
