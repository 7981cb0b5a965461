package render

import (
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/huangsam/tpmplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plotSeries(label string, minutes []float64, tpm []int) schema.PlotSeries {
	return schema.PlotSeries{
		Label: label,
		Path:  label + ".json",
		Key:   "MySQL tpm",
		Truncated: schema.TruncatedSeries{
			NormalizedSeries: schema.NormalizedSeries{ElapsedMinutes: minutes, Throughput: tpm},
			Reason:           schema.StopEnd,
		},
	}
}

func testOptions(t *testing.T, format schema.ImageFormat) ChartOptions {
	return ChartOptions{
		Name:     "comparison",
		OutDir:   filepath.Join(t.TempDir(), "graphs"),
		Format:   format,
		WidthIn:  6,
		HeightIn: 3,
		TimeCap:  -1,
	}
}

func TestRenderChartFormats(t *testing.T) {
	series := []schema.PlotSeries{
		plotSeries("MySQL", []float64{0, 1, 2, 3}, []int{120, 340, 360, 90}),
		plotSeries("PostgreSQL", []float64{0, 1, 2}, []int{100, 300, 310}),
	}

	for _, format := range []schema.ImageFormat{schema.PNGImage, schema.SVGImage, schema.PDFImage} {
		t.Run(string(format), func(t *testing.T) {
			opts := testOptions(t, format)
			path, err := RenderChart(series, opts)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(opts.OutDir, "comparison."+string(format)), path)

			info, err := os.Stat(path)
			require.NoError(t, err, "chart should be written")
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestRenderChartHugeTimeCap(t *testing.T) {
	series := []schema.PlotSeries{plotSeries("MySQL", []float64{0, 1}, []int{10, 20})}
	opts := testOptions(t, schema.PNGImage)
	opts.TimeCap = 1e19
	opts.WidthIn, opts.HeightIn = 12, 6

	var path string
	require.NotPanics(t, func() {
		var err error
		path, err = RenderChart(series, opts)
		require.NoError(t, err)
	})
	assert.FileExists(t, path)
}

func TestRenderChartEmptyPrefix(t *testing.T) {
	// A series truncated to nothing still renders alongside the others.
	series := []schema.PlotSeries{
		plotSeries("idle", []float64{}, []int{}),
		plotSeries("busy", []float64{0, 0.5}, []int{10, 20}),
	}
	path, err := RenderChart(series, testOptions(t, schema.PNGImage))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRenderChartErrors(t *testing.T) {
	one := []schema.PlotSeries{plotSeries("a", []float64{0}, []int{1})}

	t.Run("no series", func(t *testing.T) {
		_, err := RenderChart(nil, testOptions(t, schema.PNGImage))
		assert.ErrorIs(t, err, ErrNoSeries)
	})

	t.Run("no name", func(t *testing.T) {
		opts := testOptions(t, schema.PNGImage)
		opts.Name = ""
		_, err := RenderChart(one, opts)
		assert.Error(t, err)
	})

	t.Run("bad size", func(t *testing.T) {
		opts := testOptions(t, schema.PNGImage)
		opts.HeightIn = 0
		_, err := RenderChart(one, opts)
		assert.Error(t, err)
	})

	t.Run("infinite time cap", func(t *testing.T) {
		opts := testOptions(t, schema.PNGImage)
		opts.TimeCap = math.Inf(1)
		_, err := RenderChart(one, opts)
		assert.Error(t, err)
	})

	t.Run("out dir is a file", func(t *testing.T) {
		opts := testOptions(t, schema.PNGImage)
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
		opts.OutDir = blocker
		_, err := RenderChart(one, opts)
		assert.Error(t, err)
	})
}

func TestAxisMaxAndTicks(t *testing.T) {
	series := []schema.PlotSeries{
		plotSeries("a", []float64{0, 1, 2.5}, []int{1, 2, 3}),
	}

	tests := []struct {
		name      string
		timeCap   float64
		wantMax   float64
		wantTicks int
	}{
		{"uncapped uses data", -1, 2.5, 4},
		{"capped uses cap", 16, 16, 17},
		{"zero cap floors at one", 0, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := axisMax(series, tt.timeCap)
			assert.Equal(t, tt.wantMax, got)

			ticks := minuteTicks(got)
			require.Len(t, ticks, tt.wantTicks)
			assert.Equal(t, "0", ticks[0].Label)
			assert.Equal(t, float64(tt.wantTicks-1), ticks[len(ticks)-1].Value)
		})
	}

	assert.Equal(t, 1.0, axisMax(nil, -1))
}

func TestMinuteTicksLongAxis(t *testing.T) {
	tests := []struct {
		name     string
		xMax     float64
		wantStep float64
	}{
		{"one hour", 60, 1},
		{"just over an hour", 61, 2},
		{"one week", 10080, 168},
		{"ten million minutes", 1e7, 166667},
		{"beyond int64", 1e19, math.Ceil(1e19 / 60)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := minuteTicks(tt.xMax)
			require.NotEmpty(t, ticks)
			assert.LessOrEqual(t, len(ticks), 61)
			assert.Equal(t, "0", ticks[0].Label)
			if len(ticks) > 1 {
				assert.Equal(t, tt.wantStep, ticks[1].Value)
			}
			last := ticks[len(ticks)-1].Value
			assert.LessOrEqual(t, last, math.Ceil(tt.xMax))
			assert.Greater(t, last+tt.wantStep, math.Ceil(tt.xMax))
		})
	}
}

func TestBuildPlotDefaults(t *testing.T) {
	p, err := buildPlot([]schema.PlotSeries{plotSeries("a", []float64{0, 1}, []int{50, 100})}, ChartOptions{TimeCap: -1})
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, p.Title.Text)
	assert.Equal(t, XAxisLabel, p.X.Label.Text)
	assert.True(t, p.Legend.Top)
	assert.True(t, p.Legend.Left)
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 1.0, p.X.Max)
	assert.InDelta(t, 105.0, p.Y.Max, 1e-9)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("graphs", "x.png"), ChartOptions{Name: "x", OutDir: "graphs"}.OutputPath())
	assert.Equal(t, "x.svg", ChartOptions{Name: "x", Format: schema.SVGImage}.OutputPath())
}

func TestShowChart(t *testing.T) {
	original := openCommand
	t.Cleanup(func() { openCommand = original })

	var opened string
	openCommand = func(path string) *exec.Cmd {
		opened = path
		return exec.Command(os.Args[0], "-test.run=^$")
	}

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, ShowChart(filepath.Join(t.TempDir(), "missing.png")))
	})

	t.Run("opens existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chart.png")
		require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))
		require.NoError(t, ShowChart(path))
		assert.Equal(t, path, opened)
	})
}
