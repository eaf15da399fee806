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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// GroupVersion is the apiVersion accepted in run configuration files.
	GroupVersion = "pareto.sigs.k8s.io/v1alpha1"
	// RunArgsKind is the kind of a run configuration file.
	RunArgsKind = "RunArgs"

	AlgorithmNSGAII = "nsga2"
	AlgorithmNaive  = "naive"
)

// NSGAIIArgs holds arguments used to configure the NSGA-II optimizer.
type NSGAIIArgs struct {
	// Iterations is the number of generations evolved by a Run.
	Iterations int `json:"iterations,omitempty"`

	// PopulationSize is the fixed number of individuals.
	PopulationSize int `json:"populationSize,omitempty"`

	// KillRatio is the fraction of the population replaced every generation.
	KillRatio *float64 `json:"killRatio,omitempty"`

	// CrossoverRatio is the fraction of replaced individuals produced by
	// crossover. The remainder is produced by mutation.
	CrossoverRatio *float64 `json:"crossoverRatio,omitempty"`
}

// NaiveArgs holds arguments used to configure the Monte-Carlo optimizer.
type NaiveArgs struct {
	// Iterations is the number of random samples drawn.
	Iterations int `json:"iterations,omitempty"`
}

// RunArgs describes a single optimization run of the pareto command.
type RunArgs struct {
	metav1.TypeMeta `json:",inline"`

	// Problem is the gallery name of the problem to optimize.
	Problem string `json:"problem,omitempty"`

	// Dimension overrides the parameter count of scalable problems.
	Dimension int `json:"dimension,omitempty"`

	// Algorithm is either "nsga2" or "naive".
	Algorithm string `json:"algorithm,omitempty"`

	// Seed initializes the random generator. Equal seeds reproduce runs.
	Seed uint64 `json:"seed,omitempty"`

	NSGAII NSGAIIArgs `json:"nsga2,omitempty"`
	Naive  NaiveArgs  `json:"naive,omitempty"`
}
