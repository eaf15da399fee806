package framework

import (
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ValidateProblem checks the dimensions and box constraints of a problem.
// Optimizers refuse to work on problems that fail validation.
func ValidateProblem(p Problem) error {
	var allErrs field.ErrorList
	if p == nil {
		return field.ErrorList{field.Required(field.NewPath("problem"), "")}.ToAggregate()
	}

	if n := p.ParameterCount(); n <= 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("parameterCount"), n, "must be positive"))
	}
	if m := p.ObjectiveCount(); m <= 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("objectiveCount"), m, "must be positive"))
	}

	boxPath := field.NewPath("box")
	for i := 0; i < p.ParameterCount(); i++ {
		lo, hi := p.BoxMin(i), p.BoxMax(i)
		switch {
		case !isFinite(lo) || !isFinite(hi):
			allErrs = append(allErrs, field.Invalid(boxPath.Index(i), []float64{lo, hi}, "bounds must be finite"))
		case lo > hi:
			allErrs = append(allErrs, field.Invalid(boxPath.Index(i), []float64{lo, hi}, "lower bound exceeds upper bound"))
		}
	}

	return allErrs.ToAggregate()
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
