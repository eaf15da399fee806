package util

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"sigs.k8s.io/pareto/pkg/pareto/framework"
)

// trueFrontPoints is the resolution of the plotted true Pareto front.
const trueFrontPoints = 500

// PlotFrontier creates a scatter plot comparing the true Pareto front of the given
// problem with the frontier estimated by the algorithm and writes it as HTML to path.
// Only problems with two objectives can be plotted.
func PlotFrontier(frontier *framework.Frontier, problem framework.Benchmark, algorithmName, path string) error {
	if frontier == nil || frontier.SampleCount() == 0 {
		return fmt.Errorf("frontier is empty for %s benchmark", problem.Name())
	}
	if frontier.ObjectiveCount() != 2 {
		return fmt.Errorf("can only plot 2D for %s benchmark, got %d objectives", problem.Name(), frontier.ObjectiveCount())
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s Benchmark", algorithmName, problem.Name()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "f1(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "f2(x)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	if trueFront := problem.TrueParetoFront(trueFrontPoints); len(trueFront) > 0 {
		trueData := make([]opts.ScatterData, len(trueFront))
		for i, p := range trueFront {
			trueData[i] = opts.ScatterData{
				Value:      []float64(p),
				Symbol:     "circle",
				SymbolSize: 3,
			}
		}
		scatter.AddSeries("True Pareto Front", trueData)
	}

	found := make([]opts.ScatterData, frontier.SampleCount())
	for i := range found {
		y := frontier.Objectives(i)
		found[i] = opts.ScatterData{
			Value:      []float64{y[0], y[1]},
			Symbol:     "triangle",
			SymbolSize: 8,
		}
	}
	scatter.AddSeries(fmt.Sprintf("%s Solutions", algorithmName), found).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	return WriteFile(path, func(w io.Writer) error {
		return scatter.Render(w)
	})
}
