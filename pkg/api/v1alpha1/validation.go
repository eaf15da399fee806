/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"
)

// ValidateNSGAIIArgs validates defaulted NSGA-II arguments.
func ValidateNSGAIIArgs(path *field.Path, args *NSGAIIArgs) field.ErrorList {
	var allErrs field.ErrorList

	if args.Iterations < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("iterations"), args.Iterations, "must not be negative"))
	}
	if args.PopulationSize < 2 {
		allErrs = append(allErrs, field.Invalid(path.Child("populationSize"), args.PopulationSize, "must be at least 2"))
	}

	kill := ptr.Deref(args.KillRatio, DefaultKillRatio)
	if kill <= 0 || kill >= 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("killRatio"), kill, "must be in (0, 1)"))
	}
	crossover := ptr.Deref(args.CrossoverRatio, DefaultCrossoverRatio)
	if crossover < 0 || crossover > 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("crossoverRatio"), crossover, "must be in [0, 1]"))
	}

	// Only report the derived selection size when its inputs are sane.
	if len(allErrs) == 0 {
		if sel := args.Select(); sel <= 0 || sel >= args.PopulationSize {
			allErrs = append(allErrs, field.Invalid(path.Child("killRatio"), kill,
				"must keep at least one individual and replace at least one"))
		}
	}
	return allErrs
}

// ValidateNaiveArgs validates defaulted Monte-Carlo arguments.
func ValidateNaiveArgs(path *field.Path, args *NaiveArgs) field.ErrorList {
	var allErrs field.ErrorList
	if args.Iterations < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("iterations"), args.Iterations, "must not be negative"))
	}
	return allErrs
}

// ValidateRunArgs validates defaulted run arguments.
func ValidateRunArgs(args *RunArgs) error {
	var allErrs field.ErrorList

	if args.APIVersion != "" && args.APIVersion != GroupVersion {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("apiVersion"), args.APIVersion, []string{GroupVersion}))
	}
	if args.Kind != "" && args.Kind != RunArgsKind {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("kind"), args.Kind, []string{RunArgsKind}))
	}
	if args.Problem == "" {
		allErrs = append(allErrs, field.Required(field.NewPath("problem"), ""))
	}
	if args.Dimension < 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("dimension"), args.Dimension, "must not be negative"))
	}

	switch args.Algorithm {
	case AlgorithmNSGAII:
		allErrs = append(allErrs, ValidateNSGAIIArgs(field.NewPath("nsga2"), &args.NSGAII)...)
	case AlgorithmNaive:
		allErrs = append(allErrs, ValidateNaiveArgs(field.NewPath("naive"), &args.Naive)...)
	default:
		allErrs = append(allErrs, field.NotSupported(field.NewPath("algorithm"), args.Algorithm,
			[]string{AlgorithmNSGAII, AlgorithmNaive}))
	}

	return allErrs.ToAggregate()
}
