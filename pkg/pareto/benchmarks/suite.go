package benchmarks

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"

	"sigs.k8s.io/pareto/pkg/api/v1alpha1"
	"sigs.k8s.io/pareto/pkg/pareto/algorithms"
	"sigs.k8s.io/pareto/pkg/pareto/framework"
	"sigs.k8s.io/pareto/pkg/pareto/tracing"
	"sigs.k8s.io/pareto/pkg/pareto/util"
)

// trueFrontPoints is the resolution of the true front used for IGD.
const trueFrontPoints = 500

// TestSuite runs a set of benchmark problems
type TestSuite struct {
	problems []framework.Benchmark
	args     v1alpha1.NSGAIIArgs
	// naiveIterations enables the Monte-Carlo optimizer when positive.
	naiveIterations int
	opts            []algorithms.Option
}

// Result summarizes one optimizer run on one problem. IGD and Hypervolume are
// NaN when the true front of the problem is unknown or not two-dimensional.
type Result struct {
	Problem      string
	Algorithm    string
	FrontierSize int
	IGD          float64
	Hypervolume  float64
}

// NewTestSuite creates a new benchmark test suite
func NewTestSuite(args v1alpha1.NSGAIIArgs, opts ...algorithms.Option) *TestSuite {
	return &TestSuite{
		args: args,
		opts: opts,
	}
}

// AddProblem adds a problem to the test suite
func (ts *TestSuite) AddProblem(p framework.Benchmark) {
	ts.problems = append(ts.problems, p)
}

// SetNaiveIterations also runs the Monte-Carlo optimizer with the given number
// of samples on every problem. Zero disables it.
func (ts *TestSuite) SetNaiveIterations(iterations int) {
	ts.naiveIterations = iterations
}

// AddStandardProblems adds common benchmark problems
func (ts *TestSuite) AddStandardProblems() {
	schaffer1, _ := NewSchaffer1(10)
	ts.AddProblem(schaffer1)
	ts.AddProblem(NewSchaffer2())
	ts.AddProblem(NewFonsecaFleming(3))

	// ZDT problems with 30 variables (standard)
	ts.AddProblem(NewZDT1(30))
	ts.AddProblem(NewZDT2(30))
	ts.AddProblem(NewZDT3(30))
	ts.AddProblem(NewZDT4(10))
	ts.AddProblem(NewZDT6(10))

	// DTLZ problems
	// 2 objectives, 6 variables (M + k - 1, where k=5 for DTLZ1)
	ts.AddProblem(NewDTLZ1(6, 2))
	// 2 objectives, 11 variables (M + k - 1, where k=10 for DTLZ2)
	ts.AddProblem(NewDTLZ2(11, 2))

	// 3 objectives versions
	ts.AddProblem(NewDTLZ1(7, 3))
	ts.AddProblem(NewDTLZ2(12, 3))
	ts.AddProblem(NewViennet())
}

// Run executes the test suite. Plots and frontier dumps are written to
// outputDir when it is not empty.
func (ts *TestSuite) Run(ctx context.Context, rng framework.RandomGenerator, outputDir string) ([]Result, error) {
	logger := klog.FromContext(ctx)
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var results []Result
	for _, problem := range ts.problems {
		result, err := ts.runOne(ctx, rng, problem, v1alpha1.AlgorithmNSGAII, outputDir)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		if ts.naiveIterations > 0 {
			result, err := ts.runOne(ctx, rng, problem, v1alpha1.AlgorithmNaive, outputDir)
			if err != nil {
				return results, err
			}
			results = append(results, result)
		}
	}
	logger.V(2).Info("Benchmark suite complete", "problems", len(ts.problems), "runs", len(results))
	return results, nil
}

func (ts *TestSuite) runOne(ctx context.Context, rng framework.RandomGenerator, problem framework.Benchmark, algorithm, outputDir string) (Result, error) {
	algorithmName := algorithms.AlgorithmName(algorithm)
	ctx, span := tracing.Tracer().Start(ctx, "Benchmark", trace.WithAttributes(
		tracing.ProblemKey.String(problem.Name()),
		tracing.AlgorithmKey.String(algorithmName),
	))
	defer span.End()

	logger := klog.FromContext(ctx).WithValues("problem", problem.Name())
	logger.V(2).Info("Running benchmark", "algorithm", algorithmName)

	args := &v1alpha1.RunArgs{
		Problem:   problem.Name(),
		Algorithm: algorithm,
		NSGAII:    ts.args,
		Naive:     v1alpha1.NaiveArgs{Iterations: ts.naiveIterations},
	}
	opts := append(append([]algorithms.Option(nil), ts.opts...), algorithms.WithLogger(logger))
	frontier, err := algorithms.Optimization(problem, rng, args, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, fmt.Errorf("%s on %s: %w", algorithmName, problem.Name(), err)
	}

	result := Result{
		Problem:      problem.Name(),
		Algorithm:    algorithmName,
		FrontierSize: frontier.SampleCount(),
		IGD:          math.NaN(),
		Hypervolume:  math.NaN(),
	}
	if trueFront := problem.TrueParetoFront(trueFrontPoints); len(trueFront) > 0 {
		points := frontier.Points()
		result.IGD = IGD(points, trueFront)
		if problem.ObjectiveCount() == 2 {
			result.Hypervolume = Hypervolume2D(points, ReferencePoint(trueFront))
		}
		span.SetAttributes(tracing.IGDKey.Float64(result.IGD))
	}
	span.SetAttributes(tracing.FrontierSizeKey.Int(result.FrontierSize))
	logger.Info("Benchmark finished",
		"algorithm", algorithmName,
		"frontierSize", result.FrontierSize,
		"igd", result.IGD,
		"hypervolume", result.Hypervolume)

	if outputDir == "" {
		return result, nil
	}
	outputFile := filepath.Join(outputDir, fmt.Sprintf("%s_%s_results", problem.Name(), algorithmName))
	if problem.ObjectiveCount() == 2 {
		if err := util.PlotFrontier(frontier, problem, algorithmName, outputFile+".html"); err != nil {
			logger.Error(err, "Failed to plot results")
		}
	}
	if err := util.WriteFile(outputFile+".yaml", func(w io.Writer) error {
		return util.WriteFrontier(w, frontier, problem.Name(), algorithmName)
	}); err != nil {
		logger.Error(err, "Failed to write frontier")
	}
	return result, nil
}

// IGD computes the Inverted Generational Distance, the mean Euclidean distance
// from every point of the true front to its nearest obtained point.
// It returns +Inf when nothing was obtained.
func IGD(obtained, trueFront []framework.ObjectiveSpacePoint) float64 {
	if len(obtained) == 0 {
		return math.Inf(1)
	}
	distances := make([]float64, len(trueFront))
	for i, truePoint := range trueFront {
		minDist := math.Inf(1)
		for _, obtPoint := range obtained {
			minDist = math.Min(minDist, floats.Distance(truePoint, obtPoint, 2))
		}
		distances[i] = minDist
	}
	return stat.Mean(distances, nil)
}

// ReferencePoint returns a hypervolume reference point slightly beyond the
// worst value of every objective of the given front.
func ReferencePoint(front []framework.ObjectiveSpacePoint) []float64 {
	if len(front) == 0 {
		return nil
	}
	m := len(front[0])
	lo := make([]float64, m)
	hi := make([]float64, m)
	for j := 0; j < m; j++ {
		column := make([]float64, len(front))
		for i, p := range front {
			column[i] = p[j]
		}
		lo[j], hi[j] = floats.Min(column), floats.Max(column)
	}
	ref := make([]float64, m)
	for j := range ref {
		ref[j] = hi[j] + 0.1*math.Max(hi[j]-lo[j], 1)
	}
	return ref
}

// Hypervolume2D computes the area dominated by the given two-objective points
// and bounded by the reference point. Points not strictly better than the
// reference in both objectives do not contribute.
func Hypervolume2D(points []framework.ObjectiveSpacePoint, reference []float64) float64 {
	var inside []framework.ObjectiveSpacePoint
	for _, p := range points {
		if p[0] < reference[0] && p[1] < reference[1] {
			inside = append(inside, p)
		}
	}
	front := framework.NonDominated(inside)
	sort.Slice(front, func(i, j int) bool {
		if front[i][0] != front[j][0] {
			return front[i][0] < front[j][0]
		}
		return front[i][1] < front[j][1]
	})

	volume := 0.0
	previous := reference[1]
	for _, p := range front {
		if p[1] >= previous {
			continue
		}
		volume += (reference[0] - p[0]) * (previous - p[1])
		previous = p[1]
	}
	return volume
}
