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

// Package options provides the flags used for the pareto command.
package options

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"sigs.k8s.io/pareto/pkg/api/v1alpha1"
)

// CommonOptions holds the flags shared by every subcommand that optimizes.
type CommonOptions struct {
	MetricsFile  string
	OTLPEndpoint string
}

func (o *CommonOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "File to write the prometheus metrics of the run to, in text exposition format.")
	fs.StringVar(&o.OTLPEndpoint, "otlp-endpoint", o.OTLPEndpoint, "host:port of an OTLP gRPC collector receiving traces. Traces are dropped when empty.")
}

// RunOptions holds the flags of a single optimization run.
type RunOptions struct {
	CommonOptions

	ConfigFile string
	Output     string
	Plot       string

	// Args is populated by Complete from the config file and the flags.
	Args *v1alpha1.RunArgs

	problem        string
	dimension      int
	algorithm      string
	seed           uint64
	iterations     int
	population     int
	killRatio      float64
	crossoverRatio float64
}

// NewRunOptions returns RunOptions with the default flag values.
func NewRunOptions() *RunOptions {
	return &RunOptions{
		problem:        v1alpha1.DefaultProblem,
		algorithm:      v1alpha1.AlgorithmNSGAII,
		iterations:     v1alpha1.DefaultIterations,
		population:     v1alpha1.DefaultPopulationSize,
		killRatio:      v1alpha1.DefaultKillRatio,
		crossoverRatio: v1alpha1.DefaultCrossoverRatio,
	}
}

// AddFlags adds flags for a specific RunOptions to the specified FlagSet
func (o *RunOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "File with the RunArgs configuration. Explicitly set flags take precedence over its values.")
	fs.StringVar(&o.Output, "output", o.Output, "File to write the estimated frontier to as yaml. Defaults to standard output.")
	fs.StringVar(&o.Plot, "plot", o.Plot, "HTML file to render a scatter plot of a two-objective frontier to.")

	fs.StringVar(&o.problem, "problem", o.problem, "Name of the gallery problem to optimize.")
	fs.IntVar(&o.dimension, "dimension", o.dimension, "Parameter count of scalable problems. Zero selects the problem default.")
	fs.StringVar(&o.algorithm, "algorithm", o.algorithm, fmt.Sprintf("Optimizer to use, either %q or %q.", v1alpha1.AlgorithmNSGAII, v1alpha1.AlgorithmNaive))
	fs.Uint64Var(&o.seed, "seed", o.seed, "Seed of the random generator. Runs with equal seeds are reproducible.")
	fs.IntVar(&o.iterations, "iterations", o.iterations, "Number of generations for NSGA-II or samples for the naive optimizer.")
	fs.IntVar(&o.population, "population", o.population, "Population size of NSGA-II.")
	fs.Float64Var(&o.killRatio, "kill-ratio", o.killRatio, "Fraction of the NSGA-II population replaced every generation.")
	fs.Float64Var(&o.crossoverRatio, "crossover-ratio", o.crossoverRatio, "Fraction of replaced individuals produced by crossover instead of mutation.")

	o.CommonOptions.AddFlags(fs)
}

// Complete builds Args from the config file, if any, and the flags that were
// set explicitly. The result is defaulted and validated.
func (o *RunOptions) Complete(fs *pflag.FlagSet) error {
	args := &v1alpha1.RunArgs{}
	if o.ConfigFile != "" {
		loaded, err := LoadRunArgs(o.ConfigFile)
		if err != nil {
			return err
		}
		args = loaded
	}

	// Without a config file the flag defaults apply as well.
	apply := func(name string) bool {
		return o.ConfigFile == "" || fs.Changed(name)
	}
	if apply("problem") {
		args.Problem = o.problem
	}
	if apply("dimension") {
		args.Dimension = o.dimension
	}
	if apply("algorithm") {
		args.Algorithm = o.algorithm
	}
	if apply("seed") {
		args.Seed = o.seed
	}
	if apply("iterations") {
		args.NSGAII.Iterations = o.iterations
		args.Naive.Iterations = o.iterations
	}
	if apply("population") {
		args.NSGAII.PopulationSize = o.population
	}
	if apply("kill-ratio") {
		args.NSGAII.KillRatio = ptr.To(o.killRatio)
	}
	if apply("crossover-ratio") {
		args.NSGAII.CrossoverRatio = ptr.To(o.crossoverRatio)
	}

	v1alpha1.SetDefaults_RunArgs(args)
	if err := v1alpha1.ValidateRunArgs(args); err != nil {
		return fmt.Errorf("invalid run arguments: %w", err)
	}
	o.Args = args
	klog.V(2).InfoS("Completed run options", "problem", args.Problem, "algorithm", args.Algorithm, "seed", args.Seed)
	return nil
}

// LoadRunArgs reads a RunArgs configuration file. Unknown fields are rejected.
func LoadRunArgs(path string) (*v1alpha1.RunArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	args := &v1alpha1.RunArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("failed to decode config file %q: %w", path, err)
	}
	return args, nil
}

// BenchmarkOptions holds the flags of the benchmark suite.
type BenchmarkOptions struct {
	CommonOptions

	OutputDir       string
	Seed            uint64
	Iterations      int
	Population      int
	NaiveIterations int
}

// NewBenchmarkOptions returns BenchmarkOptions with the default flag values.
func NewBenchmarkOptions() *BenchmarkOptions {
	return &BenchmarkOptions{
		OutputDir:  "results",
		Iterations: 250,
		Population: 100,
	}
}

// AddFlags adds flags for a specific BenchmarkOptions to the specified FlagSet
func (o *BenchmarkOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.OutputDir, "output-dir", o.OutputDir, "Directory receiving plots and frontier dumps. Nothing is written when empty.")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "Seed of the random generator.")
	fs.IntVar(&o.Iterations, "iterations", o.Iterations, "Number of NSGA-II generations per problem.")
	fs.IntVar(&o.Population, "population", o.Population, "Population size of NSGA-II.")
	fs.IntVar(&o.NaiveIterations, "naive-iterations", o.NaiveIterations, "Samples of the naive optimizer per problem. Zero skips it.")

	o.CommonOptions.AddFlags(fs)
}

// NSGAIIArgs returns the validated NSGA-II arguments of the suite.
func (o *BenchmarkOptions) NSGAIIArgs() (v1alpha1.NSGAIIArgs, error) {
	args := v1alpha1.NSGAIIArgs{
		Iterations:     o.Iterations,
		PopulationSize: o.Population,
	}
	v1alpha1.SetDefaults_NSGAIIArgs(&args)
	if err := v1alpha1.ValidateNSGAIIArgs(field.NewPath("nsga2"), &args).ToAggregate(); err != nil {
		return args, fmt.Errorf("invalid benchmark arguments: %w", err)
	}
	if o.NaiveIterations < 0 {
		return args, fmt.Errorf("naive-iterations must not be negative, got %d", o.NaiveIterations)
	}
	return args, nil
}
