package plotting

import (
	"fmt"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
)

// Selection names a frame and the columns to draw from it.
type Selection struct {
	Name    string
	Frame   Framer
	Columns []string
}

// Framer is the subset of frame.Frame the chart builders need. Kept as an
// interface so the builders stay decoupled from the frame package internals.
type Framer interface {
	Index() []time.Time
	Column(name string) ([]float64, bool)
}

// CompareFrames builds an interactive line chart overlaying columns from
// several frames. Each frame keeps its own time axis, so differently
// sampled series can be compared directly.
func CompareFrames(title string, selections []Selection) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time", Name: "DateTime"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	for _, sel := range selections {
		index := sel.Frame.Index()
		for _, col := range sel.Columns {
			values, ok := sel.Frame.Column(col)
			if !ok {
				continue
			}
			data := make([]opts.LineData, len(values))
			for i, v := range values {
				data[i] = opts.LineData{Value: []interface{}{index[i], v}}
			}
			line.AddSeries(fmt.Sprintf("%s: %s", sel.Name, col), data)
		}
	}
	return line
}

// LinePlot builds the static counterpart of CompareFrames: a gonum plot
// with one line per selected column and a time-formatted x axis.
func LinePlot(title, xLabel, yLabel string, selections []Selection) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02\n15:04:05"}
	p.Add(plotter.NewGrid())

	series := 0
	for _, sel := range selections {
		index := sel.Frame.Index()
		for _, col := range sel.Columns {
			values, ok := sel.Frame.Column(col)
			if !ok {
				return nil, fmt.Errorf("no column %s in frame %s", col, sel.Name)
			}

			xys := make(plotter.XYs, len(values))
			for i, v := range values {
				xys[i].X = float64(index[i].Unix())
				xys[i].Y = v
			}

			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("failed to build line for %s: %w", col, err)
			}
			line.Color = plotutil.Color(series)
			series++

			p.Add(line)
			p.Legend.Add(fmt.Sprintf("%s: %s", sel.Name, col), line)
		}
	}

	if series == 0 {
		return nil, fmt.Errorf("no drawable series selected")
	}
	return p, nil
}
