package framework

import "fmt"

// Dominates checks if the objective vector x Pareto-dominates y, i.e. x is not
// worse than y in any objective and strictly better in at least one.
// Pareto domination does not define a total order.
func Dominates(x, y []float64) bool {
	if len(x) != len(y) {
		panic(fmt.Sprintf("framework: comparing objective vectors of different lengths %d and %d", len(x), len(y)))
	}
	better := false
	for i := range x {
		if x[i] > y[i] {
			return false
		}
		if x[i] < y[i] {
			better = true
		}
	}
	return better
}

// NonDominated returns the points of the given set that are not dominated by
// any other point of the set, keeping their relative order.
func NonDominated(points []ObjectiveSpacePoint) []ObjectiveSpacePoint {
	result := make([]ObjectiveSpacePoint, 0, len(points))
	for i, p := range points {
		dominated := false
		for j, q := range points {
			if i != j && Dominates(q, p) {
				dominated = true
				break
			}
		}
		if !dominated {
			result = append(result, p)
		}
	}
	return result
}
