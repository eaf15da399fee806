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

// Package app implements the pareto command.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/exp/rand"
	"k8s.io/component-base/logs"
	"k8s.io/klog/v2"

	"sigs.k8s.io/pareto/cmd/pareto/app/options"
	"sigs.k8s.io/pareto/pkg/pareto/algorithms"
	"sigs.k8s.io/pareto/pkg/pareto/benchmarks"
	"sigs.k8s.io/pareto/pkg/pareto/metrics"
	"sigs.k8s.io/pareto/pkg/pareto/tracing"
	"sigs.k8s.io/pareto/pkg/pareto/util"
)

// NewParetoCommand creates a *cobra.Command object with default parameters
func NewParetoCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pareto",
		Short: "pareto estimates Pareto frontiers of multi-objective problems",
		Long: `The pareto command estimates the set of Pareto-optimal trade-offs of a
continuous multi-objective minimization problem, either by Monte-Carlo sampling
or with the NSGA-II evolutionary algorithm.`,
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	logs.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewRunCommand(out))
	cmd.AddCommand(NewBenchmarkCommand(out))
	cmd.AddCommand(NewVersionCommand())
	return cmd
}

// NewRunCommand creates the command optimizing a single gallery problem.
func NewRunCommand(out io.Writer) *cobra.Command {
	o := options.NewRunOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Estimate the Pareto frontier of a gallery problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd.Flags()); err != nil {
				return err
			}
			return Run(cmd.Context(), out, o)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// NewBenchmarkCommand creates the command running the benchmark suite.
func NewBenchmarkCommand(out io.Writer) *cobra.Command {
	o := options.NewBenchmarkOptions()
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run NSGA-II on the standard benchmark problems and report IGD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunBenchmark(cmd.Context(), out, o)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// Run optimizes the configured problem and writes the frontier, plot and metrics.
func Run(ctx context.Context, out io.Writer, o *options.RunOptions) error {
	logger := klog.FromContext(ctx)
	args := o.Args

	tp, err := tracing.NewTracerProvider(ctx, o.OTLPEndpoint, tracing.DefaultServiceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error(err, "Failed to shut down tracer provider")
		}
	}()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}

	problem, err := benchmarks.NewRegistry().Lookup(args.Problem, args.Dimension)
	if err != nil {
		return err
	}
	algorithmName := algorithms.AlgorithmName(args.Algorithm)

	ctx, span := tracing.Tracer().Start(ctx, "Run", trace.WithAttributes(
		tracing.ProblemKey.String(problem.Name()),
		tracing.AlgorithmKey.String(algorithmName),
	))
	defer span.End()

	logger.V(2).Info("Optimizing", "problem", problem.Name(), "algorithm", algorithmName, "seed", args.Seed)
	rng := rand.New(rand.NewSource(args.Seed))
	frontier, err := algorithms.Optimization(problem, rng, args,
		algorithms.WithLogger(klog.FromContext(ctx)),
		algorithms.WithMetrics(m))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(tracing.FrontierSizeKey.Int(frontier.SampleCount()))
	logger.Info("Estimated Pareto frontier", "problem", problem.Name(), "algorithm", algorithmName, "frontierSize", frontier.SampleCount())

	if o.Output == "" {
		if err := util.WriteFrontier(out, frontier, problem.Name(), algorithmName); err != nil {
			return err
		}
	} else if err := util.WriteFile(o.Output, func(w io.Writer) error {
		return util.WriteFrontier(w, frontier, problem.Name(), algorithmName)
	}); err != nil {
		return fmt.Errorf("failed to write frontier: %w", err)
	}

	if o.Plot != "" {
		if err := util.PlotFrontier(frontier, problem, algorithmName, o.Plot); err != nil {
			return fmt.Errorf("failed to plot frontier: %w", err)
		}
	}
	return writeMetrics(reg, o.MetricsFile)
}

// RunBenchmark runs the standard benchmark problems and prints a summary table.
func RunBenchmark(ctx context.Context, out io.Writer, o *options.BenchmarkOptions) error {
	logger := klog.FromContext(ctx)

	args, err := o.NSGAIIArgs()
	if err != nil {
		return err
	}

	tp, err := tracing.NewTracerProvider(ctx, o.OTLPEndpoint, tracing.DefaultServiceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error(err, "Failed to shut down tracer provider")
		}
	}()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}

	suite := benchmarks.NewTestSuite(args, algorithms.WithMetrics(m))
	suite.AddStandardProblems()
	suite.SetNaiveIterations(o.NaiveIterations)

	results, err := suite.Run(ctx, rand.New(rand.NewSource(o.Seed)), o.OutputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%-16s %-8s %8s %12s %12s\n", "PROBLEM", "ALGO", "POINTS", "IGD", "HYPERVOLUME")
	for _, r := range results {
		fmt.Fprintf(out, "%-16s %-8s %8d %12.6f %12.6f\n", r.Problem, r.Algorithm, r.FrontierSize, r.IGD, r.Hypervolume)
	}
	return writeMetrics(reg, o.MetricsFile)
}

// writeMetrics dumps the gathered metrics in the prometheus text format.
func writeMetrics(reg *prometheus.Registry, path string) error {
	if path == "" {
		return nil
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	return util.WriteFile(path, func(w io.Writer) error {
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
				return err
			}
		}
		return nil
	})
}
