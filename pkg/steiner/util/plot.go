package util

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/mihai-snyk/rsmt/pkg/steiner/algorithms"
	"github.com/mihai-snyk/rsmt/pkg/steiner/framework"
	"github.com/mihai-snyk/rsmt/pkg/steiner/mst"
)

// ConvergenceChart plots the best MST cost of every generation, plus the mean
// population cost when stats are available.
func ConvergenceChart(history []int, stats []algorithms.GenerationStats, title string) (*charts.Line, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("history is empty for %s", title)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("best cost %d after %d generations", history[len(history)-1], len(history)-1),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "generation"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "MST cost",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	generations := make([]int, len(history))
	best := make([]opts.LineData, len(history))
	for i, c := range history {
		generations[i] = i
		best[i] = opts.LineData{Value: c}
	}
	line.SetXAxis(generations).AddSeries("Best cost", best)

	if len(stats) == len(history) {
		mean := make([]opts.LineData, len(stats))
		for i, s := range stats {
			mean[i] = opts.LineData{Value: s.MeanCost}
		}
		line.AddSeries("Mean cost", mean)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}))

	return line, nil
}

// LayoutChart draws pins, selected Steiner points and the rectilinear tree.
// Row 0 is drawn at the top.
func LayoutChart(board framework.Board, pins framework.PinSet, c framework.Chromosome, edges []mst.Edge, title string) *charts.Scatter {
	y := func(row int) int { return board.Height - 1 - row }

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "column",
			Type: "value",
			Min:  0,
			Max:  board.Width - 1,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "row",
			Type: "value",
			Min:  0,
			Max:  board.Height - 1,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	var pinData, steinerData []opts.ScatterData
	for i := range pins {
		row, col := board.Coord(i)
		switch {
		case pins[i]:
			pinData = append(pinData, opts.ScatterData{Value: []int{col, y(row)}, Symbol: "rect", SymbolSize: 12})
		case i < len(c) && c[i]:
			steinerData = append(steinerData, opts.ScatterData{Value: []int{col, y(row)}, Symbol: "circle", SymbolSize: 8})
		}
	}
	scatter.AddSeries("Pins", pinData).AddSeries("Steiner points", steinerData)

	if len(edges) > 0 {
		// Each edge is an L: horizontal leg first, then vertical, followed by a gap.
		var wires []opts.LineData
		for _, e := range edges {
			fr, fc := board.Coord(e.From)
			tr, tc := board.Coord(e.To)
			wires = append(wires,
				opts.LineData{Value: []int{fc, y(fr)}},
				opts.LineData{Value: []int{tc, y(fr)}},
				opts.LineData{Value: []int{tc, y(tr)}},
				opts.LineData{Value: "-"},
			)
		}
		tree := charts.NewLine()
		tree.AddSeries("Tree", wires, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
		scatter.Overlap(tree)
	}

	return scatter
}

// Renderer is satisfied by every go-echarts chart.
type Renderer interface {
	Render(w io.Writer) error
}

// RenderToFile writes a chart as a standalone HTML page.
func RenderToFile(chart Renderer, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return chart.Render(f)
}

// PlotConvergence renders ConvergenceChart to filename.
func PlotConvergence(history []int, stats []algorithms.GenerationStats, title, filename string) error {
	line, err := ConvergenceChart(history, stats, title)
	if err != nil {
		return err
	}
	return RenderToFile(line, filename)
}

// PlotLayout renders LayoutChart to filename.
func PlotLayout(board framework.Board, pins framework.PinSet, c framework.Chromosome, edges []mst.Edge, title, filename string) error {
	return RenderToFile(LayoutChart(board, pins, c, edges, title), filename)
}
