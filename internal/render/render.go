// Package render draws processed TPM series as comparison line charts using gonum.org/v1/plot.
package render

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/huangsam/tpmplot/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Chart defaults.
const (
	DefaultTitle  = "Performance Comparison - TPM vs Time"
	XAxisLabel    = "Time (minutes)"
	YAxisLabel    = "TPM (transactions per minute)"
	tickRotation  = math.Pi / 4
	markerRadius  = 3 * vg.Millimeter / 2
	legendPadding = 1 * vg.Millimeter
	maxTickSpan   = 60
)

// ErrNoSeries is returned when there is nothing to draw.
var ErrNoSeries = errors.New("no series to render")

// ChartOptions controls how a chart is drawn and where it is written.
type ChartOptions struct {
	Name     string             // Output file name without extension
	Title    string             // Empty means DefaultTitle
	OutDir   string             // Created when missing
	Format   schema.ImageFormat // png, svg or pdf
	WidthIn  float64
	HeightIn float64
	TimeCap  float64 // When >= 0 the X axis spans [0, TimeCap]
}

// OutputPath returns the file the chart will be written to.
func (o ChartOptions) OutputPath() string {
	format := o.Format
	if format == "" {
		format = schema.PNGImage
	}
	return filepath.Join(o.OutDir, o.Name+"."+string(format))
}

// RenderChart draws one line per series and saves the image. It returns the written path.
func RenderChart(series []schema.PlotSeries, opts ChartOptions) (string, error) {
	if len(series) == 0 {
		return "", ErrNoSeries
	}
	if opts.Name == "" {
		return "", fmt.Errorf("chart name cannot be empty")
	}
	if opts.WidthIn <= 0 || opts.HeightIn <= 0 {
		return "", fmt.Errorf("chart size must be positive (received %.1fx%.1f inches)", opts.WidthIn, opts.HeightIn)
	}
	if math.IsNaN(opts.TimeCap) || math.IsInf(opts.TimeCap, 0) {
		return "", fmt.Errorf("time cap must be finite (received %v)", opts.TimeCap)
	}

	p, err := buildPlot(series, opts)
	if err != nil {
		return "", err
	}

	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", opts.OutDir, err)
		}
	}
	path := opts.OutputPath()
	if err := p.Save(vg.Length(opts.WidthIn)*vg.Inch, vg.Length(opts.HeightIn)*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return path, nil
}

// buildPlot assembles the plot without writing it anywhere.
func buildPlot(series []schema.PlotSeries, opts ChartOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = DefaultTitle
	}
	p.X.Label.Text = XAxisLabel
	p.Y.Label.Text = YAxisLabel
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = legendPadding
	p.Add(plotter.NewGrid())

	peak := 0
	for i, s := range series {
		pts := toXYs(s.Truncated)
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to build series %q: %w", s.Label, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		points.Radius = markerRadius

		// An empty prefix still gets a legend entry so every input is accounted for.
		if len(pts) > 0 {
			p.Add(line, points)
		}
		p.Legend.Add(s.Label, line, points)
		for _, v := range s.Truncated.Throughput {
			peak = max(peak, v)
		}
	}

	xMax := axisMax(series, opts.TimeCap)
	p.X.Min, p.X.Max = 0, xMax
	p.Y.Min = 0
	p.Y.Max = math.Max(float64(peak)*1.05, 1)
	p.X.Tick.Marker = plot.ConstantTicks(minuteTicks(xMax))
	p.X.Tick.Label.Rotation = tickRotation
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	return p, nil
}

// axisMax is the cap when one is set, otherwise the largest plotted minute, never below 1.
func axisMax(series []schema.PlotSeries, timeCap float64) float64 {
	if timeCap >= 0 {
		return math.Max(timeCap, 1)
	}
	return math.Max(schema.MaxElapsed(series), 1)
}

// minuteTicks returns labelled ticks from 0 through ceil(xMax), one per minute up to
// an hour. Longer axes use a whole-minute step that keeps at most maxTickSpan+1 ticks.
func minuteTicks(xMax float64) []plot.Tick {
	last := math.Ceil(xMax)
	step := math.Max(1, math.Ceil(last/maxTickSpan))
	ticks := make([]plot.Tick, 0, maxTickSpan+1)
	for k := 0.0; k*step <= last; k++ {
		m := k * step
		ticks = append(ticks, plot.Tick{Value: m, Label: strconv.FormatFloat(m, 'f', -1, 64)})
	}
	return ticks
}

func toXYs(s schema.TruncatedSeries) plotter.XYs {
	pts := make(plotter.XYs, s.Len())
	for i := range pts {
		pts[i].X = s.ElapsedMinutes[i]
		pts[i].Y = float64(s.Throughput[i])
	}
	return pts
}
