package benchmarks

import (
	"math"

	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

// zdt holds what the Zitzler-Deb-Thiele problems share: two objectives and
// a configurable number of variables.
type zdt struct {
	numVars int
}

func (p *zdt) ParameterCount() int { return p.numVars }
func (p *zdt) ObjectiveCount() int { return 2 }
func (p *zdt) BoxMin(int) float64  { return 0 }
func (p *zdt) BoxMax(int) float64  { return 1 }

// g is the distance function 1 + 9 * mean(x[1:]) of ZDT1 to ZDT3.
func (p *zdt) g(x []float64) float64 {
	sum := 0.0
	for i := 1; i < len(x); i++ {
		sum += x[i]
	}
	return 1 + 9*sum/float64(len(x)-1)
}

// ZDT1 is a benchmark function used to test the correctness
// of multi-objective algorithms. Its Pareto front is convex. For more details, check the article below:
// https://datacrayon.com/practical-evolutionary-algorithms/synthetic-objective-functions-and-zdt1/
type ZDT1 struct {
	zdt
}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{zdt{numVars: numVars}}
}

func (p *ZDT1) Name() string {
	return "ZDT1"
}

func (p *ZDT1) Evaluate(x, y []float64) {
	g := p.g(x)
	y[0] = x[0]
	y[1] = g * (1 - math.Sqrt(x[0]/g))
}

// TrueParetoFront generates numPoints points on the true Pareto front for ZDT1
func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	return curveFront(numPoints, 0, 1, func(x float64) float64 {
		return 1 - math.Sqrt(x)
	})
}

// ZDT2 has a non-convex Pareto front
type ZDT2 struct {
	zdt
}

func NewZDT2(numVars int) *ZDT2 {
	return &ZDT2{zdt{numVars: numVars}}
}

func (p *ZDT2) Name() string {
	return "ZDT2"
}

func (p *ZDT2) Evaluate(x, y []float64) {
	g := p.g(x)
	y[0] = x[0]
	y[1] = g * (1 - square(x[0]/g))
}

func (p *ZDT2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	return curveFront(numPoints, 0, 1, func(x float64) float64 {
		return 1 - x*x
	})
}

// ZDT3 has a disconnected Pareto front
type ZDT3 struct {
	zdt
}

func NewZDT3(numVars int) *ZDT3 {
	return &ZDT3{zdt{numVars: numVars}}
}

func (p *ZDT3) Name() string {
	return "ZDT3"
}

func (p *ZDT3) Evaluate(x, y []float64) {
	g := p.g(x)
	// ZDT3 has a disconnected front due to the sin term
	h := 1 - math.Sqrt(x[0]/g) - (x[0]/g)*math.Sin(10*math.Pi*x[0])
	y[0] = x[0]
	y[1] = g * h
}

func (p *ZDT3) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	// Only the non-dominated pieces of the curve belong to the front.
	return framework.NonDominated(curveFront(numPoints, 0, 1, func(x float64) float64 {
		return 1 - math.Sqrt(x) - x*math.Sin(10*math.Pi*x)
	}))
}

// ZDT4 has 21^9 local Pareto fronts. Its first variable lies in [0, 1], all
// others in [-5, 5].
type ZDT4 struct {
	zdt
}

func NewZDT4(numVars int) *ZDT4 {
	return &ZDT4{zdt{numVars: numVars}}
}

func (p *ZDT4) Name() string {
	return "ZDT4"
}

func (p *ZDT4) BoxMin(i int) float64 {
	if i == 0 {
		return 0
	}
	return -5
}

func (p *ZDT4) BoxMax(i int) float64 {
	if i == 0 {
		return 1
	}
	return 5
}

func (p *ZDT4) Evaluate(x, y []float64) {
	g := 1 + 10*float64(len(x)-1)
	for i := 1; i < len(x); i++ {
		g += x[i]*x[i] - 10*math.Cos(4*math.Pi*x[i])
	}
	y[0] = x[0]
	y[1] = g * (1 - math.Sqrt(x[0]/g))
}

func (p *ZDT4) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	return curveFront(numPoints, 0, 1, func(x float64) float64 {
		return 1 - math.Sqrt(x)
	})
}

// ZDT6 has a non-uniformly distributed, non-convex Pareto front.
type ZDT6 struct {
	zdt
}

func NewZDT6(numVars int) *ZDT6 {
	return &ZDT6{zdt{numVars: numVars}}
}

func (p *ZDT6) Name() string {
	return "ZDT6"
}

func (p *ZDT6) Evaluate(x, y []float64) {
	f := 1 - math.Exp(-4*x[0])*math.Pow(math.Sin(6*math.Pi*x[0]), 6)

	sum := 0.0
	for i := 1; i < len(x); i++ {
		sum += x[i]
	}
	g := 1 + 9*math.Pow(sum/float64(len(x)-1), 0.25)

	y[0] = f
	y[1] = g * (1 - square(f/g))
}

// zdt6MinFirst is the smallest value the first objective of ZDT6 attains.
const zdt6MinFirst = 0.2807753191

func (p *ZDT6) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	return curveFront(numPoints, zdt6MinFirst, 1, func(x float64) float64 {
		return 1 - x*x
	})
}

// curveFront samples the graph of f2 = h(f1) for f1 in [lo, hi].
func curveFront(numPoints int, lo, hi float64, h func(float64) float64) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		x := framework.Lerp(lo, hi, float64(i)/float64(max(numPoints-1, 1)))
		points[i] = framework.ObjectiveSpacePoint{x, h(x)}
	}
	return points
}
