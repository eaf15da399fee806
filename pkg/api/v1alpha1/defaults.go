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
	"math"

	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
)

const (
	DefaultIterations     = 1000
	DefaultPopulationSize = 1000
	DefaultKillRatio      = 0.5
	DefaultCrossoverRatio = 0.3

	DefaultProblem = "schaffer1"
)

func SetDefaults_NSGAIIArgs(args *NSGAIIArgs) {
	if args.Iterations == 0 {
		args.Iterations = DefaultIterations
	}
	if args.PopulationSize == 0 {
		args.PopulationSize = DefaultPopulationSize
	}
	if args.KillRatio == nil {
		args.KillRatio = ptr.To(DefaultKillRatio)
	}
	if args.CrossoverRatio == nil {
		args.CrossoverRatio = ptr.To(DefaultCrossoverRatio)
	}
}

func SetDefaults_NaiveArgs(args *NaiveArgs) {
	if args.Iterations == 0 {
		args.Iterations = DefaultIterations
	}
}

func SetDefaults_RunArgs(args *RunArgs) {
	klog.V(5).InfoS("Setting defaults", "kind", RunArgsKind)
	if args.APIVersion == "" {
		args.APIVersion = GroupVersion
	}
	if args.Kind == "" {
		args.Kind = RunArgsKind
	}
	if args.Problem == "" {
		args.Problem = DefaultProblem
	}
	if args.Algorithm == "" {
		args.Algorithm = AlgorithmNSGAII
	}
	SetDefaults_NSGAIIArgs(&args.NSGAII)
	SetDefaults_NaiveArgs(&args.Naive)
}

// Select returns the number of individuals that survive a generation.
func (args *NSGAIIArgs) Select() int {
	kill := ptr.Deref(args.KillRatio, DefaultKillRatio)
	return int(math.Floor((1 - kill) * float64(args.PopulationSize)))
}
