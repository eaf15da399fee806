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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"
)

func TestSetDefaultsRunArgs(t *testing.T) {
	args := &RunArgs{}
	SetDefaults_RunArgs(args)

	want := &RunArgs{
		Problem:   DefaultProblem,
		Algorithm: AlgorithmNSGAII,
		NSGAII: NSGAIIArgs{
			Iterations:     DefaultIterations,
			PopulationSize: DefaultPopulationSize,
			KillRatio:      ptr.To(DefaultKillRatio),
			CrossoverRatio: ptr.To(DefaultCrossoverRatio),
		},
		Naive: NaiveArgs{Iterations: DefaultIterations},
	}
	want.APIVersion = GroupVersion
	want.Kind = RunArgsKind

	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("SetDefaults_RunArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetDefaultsKeepsExplicitZeroCrossover(t *testing.T) {
	args := &NSGAIIArgs{CrossoverRatio: ptr.To(0.0)}
	SetDefaults_NSGAIIArgs(args)
	if *args.CrossoverRatio != 0 {
		t.Errorf("crossover ratio = %v, want explicit 0 to survive defaulting", *args.CrossoverRatio)
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		args NSGAIIArgs
		want int
	}{
		{name: "half", args: NSGAIIArgs{PopulationSize: 1000, KillRatio: ptr.To(0.5)}, want: 500},
		{name: "floor", args: NSGAIIArgs{PopulationSize: 5, KillRatio: ptr.To(0.5)}, want: 2},
		{name: "default kill ratio", args: NSGAIIArgs{PopulationSize: 10}, want: 5},
		{name: "small kill ratio", args: NSGAIIArgs{PopulationSize: 1000, KillRatio: ptr.To(0.2)}, want: 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.args.Select(); got != tt.want {
				t.Errorf("Select() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateNSGAIIArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       NSGAIIArgs
		wantFields []string
	}{
		{
			name: "valid",
			args: NSGAIIArgs{Iterations: 10, PopulationSize: 100, KillRatio: ptr.To(0.5), CrossoverRatio: ptr.To(0.3)},
		},
		{
			name: "zero crossover is valid",
			args: NSGAIIArgs{Iterations: 10, PopulationSize: 100, KillRatio: ptr.To(0.5), CrossoverRatio: ptr.To(0.0)},
		},
		{
			name:       "population too small",
			args:       NSGAIIArgs{PopulationSize: 1, KillRatio: ptr.To(0.5), CrossoverRatio: ptr.To(0.3)},
			wantFields: []string{"nsga2.populationSize"},
		},
		{
			name:       "kill everything",
			args:       NSGAIIArgs{PopulationSize: 10, KillRatio: ptr.To(1.0), CrossoverRatio: ptr.To(0.3)},
			wantFields: []string{"nsga2.killRatio"},
		},
		{
			name:       "crossover out of range",
			args:       NSGAIIArgs{PopulationSize: 10, KillRatio: ptr.To(0.5), CrossoverRatio: ptr.To(1.5)},
			wantFields: []string{"nsga2.crossoverRatio"},
		},
		{
			name:       "selection rounds to zero",
			args:       NSGAIIArgs{PopulationSize: 4, KillRatio: ptr.To(0.9), CrossoverRatio: ptr.To(0.3)},
			wantFields: []string{"nsga2.killRatio"},
		},
		{
			name:       "negative iterations",
			args:       NSGAIIArgs{Iterations: -1, PopulationSize: 10, KillRatio: ptr.To(0.5), CrossoverRatio: ptr.To(0.3)},
			wantFields: []string{"nsga2.iterations"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateNSGAIIArgs(field.NewPath("nsga2"), &tt.args)
			var got []string
			for _, err := range errs {
				got = append(got, err.Field)
			}
			if diff := cmp.Diff(tt.wantFields, got); diff != "" {
				t.Errorf("ValidateNSGAIIArgs() fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateRunArgs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunArgs)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*RunArgs) {}},
		{name: "naive", mutate: func(a *RunArgs) { a.Algorithm = AlgorithmNaive }},
		{
			name:    "unknown algorithm",
			mutate:  func(a *RunArgs) { a.Algorithm = "simplex" },
			wantErr: "algorithm",
		},
		{
			name:    "wrong kind",
			mutate:  func(a *RunArgs) { a.Kind = "Policy" },
			wantErr: "kind",
		},
		{
			name:    "negative dimension",
			mutate:  func(a *RunArgs) { a.Dimension = -3 },
			wantErr: "dimension",
		},
		{
			name: "naive ignores invalid nsga2 args",
			mutate: func(a *RunArgs) {
				a.Algorithm = AlgorithmNaive
				a.NSGAII.PopulationSize = 1
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := &RunArgs{}
			SetDefaults_RunArgs(args)
			tt.mutate(args)

			err := ValidateRunArgs(args)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateRunArgs() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateRunArgs() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
