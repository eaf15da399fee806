package framework

import "math"

// Frontier is the result of an optimizer run. It stores the parameters and
// objectives of every sample in two flat arrays, one contiguous block per sample.
type Frontier struct {
	s int
	n int
	m int

	parameters []float64
	objectives []float64
}

// NewFrontier allocates a frontier for count samples with the given number of
// parameters and objectives per sample.
func NewFrontier(count, parameters, objectives int) *Frontier {
	return &Frontier{
		s:          count,
		n:          parameters,
		m:          objectives,
		parameters: make([]float64, count*parameters),
		objectives: make([]float64, count*objectives),
	}
}

func (f *Frontier) SampleCount() int    { return f.s }
func (f *Frontier) ParameterCount() int { return f.n }
func (f *Frontier) ObjectiveCount() int { return f.m }

// Parameters returns a view of the parameters of the sample at the given index.
// Writing to the view changes the frontier.
func (f *Frontier) Parameters(index int) []float64 {
	return f.parameters[f.n*index : f.n*(index+1) : f.n*(index+1)]
}

// Objectives returns a view of the objectives of the sample at the given index.
func (f *Frontier) Objectives(index int) []float64 {
	return f.objectives[f.m*index : f.m*(index+1) : f.m*(index+1)]
}

// ParametersFrom returns the raw parameter data starting at the given sample.
// Consecutive samples follow each other without padding.
func (f *Frontier) ParametersFrom(index int) []float64 {
	return f.parameters[f.n*index:]
}

// ObjectivesFrom returns the raw objective data starting at the given sample.
func (f *Frontier) ObjectivesFrom(index int) []float64 {
	return f.objectives[f.m*index:]
}

// Points returns the objective vectors of all samples as views into the frontier.
func (f *Frontier) Points() []ObjectiveSpacePoint {
	points := make([]ObjectiveSpacePoint, f.s)
	for i := range points {
		points[i] = f.Objectives(i)
	}
	return points
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min []float64
	Max []float64
}

// ObjectiveBounds returns the bounding box of all samples in objective space.
// For an empty frontier both corners are empty.
func (f *Frontier) ObjectiveBounds() AABB {
	if f.s == 0 {
		return AABB{}
	}
	box := AABB{
		Min: make([]float64, f.m),
		Max: make([]float64, f.m),
	}
	for j := 0; j < f.m; j++ {
		box.Min[j] = math.Inf(1)
		box.Max[j] = math.Inf(-1)
	}
	for i := 0; i < f.s; i++ {
		for j, y := range f.Objectives(i) {
			box.Min[j] = math.Min(box.Min[j], y)
			box.Max[j] = math.Max(box.Max[j], y)
		}
	}
	return box
}
