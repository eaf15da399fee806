package benchmarks

import (
	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

// Identity maps the unit box onto itself: f(x) = x. The origin dominates every
// other point, which makes it a good sanity check for domination bookkeeping.
type Identity struct {
	numVars int
}

func NewIdentity(numVars int) *Identity {
	return &Identity{numVars: numVars}
}

func (p *Identity) Name() string        { return "Identity" }
func (p *Identity) ParameterCount() int { return p.numVars }
func (p *Identity) ObjectiveCount() int { return p.numVars }
func (p *Identity) BoxMin(int) float64  { return 0 }
func (p *Identity) BoxMax(int) float64  { return 1 }

func (p *Identity) Evaluate(x, y []float64) {
	copy(y, x)
}

func (p *Identity) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return []framework.ObjectiveSpacePoint{make(framework.ObjectiveSpacePoint, p.numVars)}
}

// Tradeoff is a two-parameter problem whose objectives f(x) = (x0, 1 - x0)
// trade off perfectly against each other, so that every sample is Pareto-optimal.
// The second parameter has no influence on the objectives.
type Tradeoff struct{}

func NewTradeoff() *Tradeoff {
	return &Tradeoff{}
}

func (p *Tradeoff) Name() string        { return "Tradeoff" }
func (p *Tradeoff) ParameterCount() int { return 2 }
func (p *Tradeoff) ObjectiveCount() int { return 2 }
func (p *Tradeoff) BoxMin(int) float64  { return 0 }
func (p *Tradeoff) BoxMax(int) float64  { return 1 }

func (p *Tradeoff) Evaluate(x, y []float64) {
	y[0] = x[0]
	y[1] = 1 - x[0]
}

func (p *Tradeoff) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	return linearFront(numPoints, 1)
}

// linearFront samples the line from (0, scale) to (scale, 0).
func linearFront(numPoints int, scale float64) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := 0; i < numPoints; i++ {
		t := float64(i) / float64(max(numPoints-1, 1))
		points[i] = framework.ObjectiveSpacePoint{scale * t, scale * (1 - t)}
	}
	return points
}
