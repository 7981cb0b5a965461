// Package core has core logic for loading, normalizing, truncating and charting TPM series.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/huangsam/tpmplot/internal/outwriter"
	"github.com/huangsam/tpmplot/internal/render"
	"github.com/huangsam/tpmplot/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// ExecutePlot runs every configured chart through the pipeline, renders each one
// and prints the per-series summaries. It serves as the main entry point for 'plot'.
func ExecutePlot(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	_, summaries, err := RenderCharts(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteSummaryResults(summaries, cfg, time.Since(start))
}

// RenderCharts processes and renders every configured chart in order.
// It returns the written image paths alongside the summaries of all series.
func RenderCharts(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) ([]string, []schema.SeriesSummary, error) {
	var paths []string
	var summaries []schema.SeriesSummary
	for _, chart := range cfg.Charts {
		path, chartSummaries, err := plotChart(ctx, chart, cfg, mgr)
		if err != nil {
			return nil, nil, err
		}
		paths = append(paths, path)
		summaries = append(summaries, chartSummaries...)
	}
	return paths, summaries, nil
}

// ExecuteSummary runs the pipeline without rendering and prints the per-series summaries.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	start := time.Now()
	series, err := GetPlotSeries(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSummaries(schema.SummarizeAll(series), cfg, time.Since(start))
}

// ExecutePoints runs the pipeline without rendering and prints every plotted sample.
func ExecutePoints(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	start := time.Now()
	series, err := GetPlotSeries(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WritePoints(series, cfg, time.Since(start))
}

// GetPlotSeries runs every configured chart through the pipeline and returns all series in chart order.
func GetPlotSeries(ctx context.Context, cfg *contract.Config) ([]schema.PlotSeries, error) {
	var all []schema.PlotSeries
	for _, chart := range cfg.Charts {
		series, err := processChart(ctx, chart, cfg)
		if err != nil {
			return nil, err
		}
		all = append(all, series...)
	}
	return all, nil
}

// plotChart processes, renders and records a single chart.
func plotChart(ctx context.Context, chart schema.ChartSpec, cfg *contract.Config, mgr contract.HistoryManager) (string, []schema.SeriesSummary, error) {
	if !shouldSuppressHeader(ctx) {
		contract.LogInfo(cfg.UseEmojis, "📈", fmt.Sprintf("Plotting %s from %d file(s)", chart.Name, len(chart.Files)))
	}

	ctx = beginRun(ctx, chart, cfg, mgr)

	series, err := processChart(ctx, chart, cfg)
	if err != nil {
		return "", nil, err
	}
	summaries := schema.SummarizeAll(series)

	opts := chartOptions(chart, cfg)
	path, err := render.RenderChart(series, opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render chart %s: %w", chart.Name, err)
	}
	if !shouldSuppressHeader(ctx) {
		contract.LogInfo(cfg.UseEmojis, "🖼️", fmt.Sprintf("Saved chart to %s", path))
	}

	recordRun(ctx, mgr, summaries, path)

	if cfg.Show {
		if err := render.ShowChart(path); err != nil {
			contract.LogWarn("Could not display chart", err)
		}
	}
	return path, summaries, nil
}

// chartOptions maps a resolved chart and the global render settings to renderer options.
func chartOptions(chart schema.ChartSpec, cfg *contract.Config) render.ChartOptions {
	timeCap := DefaultMaxElapsedMinutes
	if chart.TimeCap != nil {
		timeCap = *chart.TimeCap
	}
	return render.ChartOptions{
		Name:     chart.Name,
		Title:    chart.Title,
		OutDir:   chart.OutputDir,
		Format:   cfg.Format,
		WidthIn:  cfg.WidthIn,
		HeightIn: cfg.HeightIn,
		TimeCap:  timeCap,
	}
}

// beginRun starts history tracking for a chart when a store is configured.
// Tracking failures never stop the chart from being drawn.
func beginRun(ctx context.Context, chart schema.ChartSpec, cfg *contract.Config, mgr contract.HistoryManager) context.Context {
	store := historyStore(mgr)
	if store == nil {
		return ctx
	}
	configParams := map[string]any{
		"files":    chart.Files,
		"label_by": chart.LabelBy,
		"keys":     chart.Keys,
		"format":   string(cfg.Format),
		"workers":  cfg.Workers,
	}
	if chart.ZeroStreak != nil {
		configParams["zero_streak"] = *chart.ZeroStreak
	}
	if chart.TimeCap != nil {
		configParams["time_cap"] = *chart.TimeCap
	}
	runID, err := store.BeginRun(time.Now(), chart.Name, configParams)
	if err != nil {
		contract.LogWarn("Run history initialization failed", err)
		return ctx
	}
	if runID > 0 {
		ctx = withRunID(ctx, runID)
	}
	return ctx
}

// recordRun stores the series summaries and closes the run started by beginRun.
func recordRun(ctx context.Context, mgr contract.HistoryManager, summaries []schema.SeriesSummary, outputPath string) {
	runID, ok := getRunID(ctx)
	store := historyStore(mgr)
	if !ok || store == nil {
		return
	}
	recorded := 0
	for i, s := range summaries {
		if err := store.RecordSeries(runID, i, s); err != nil {
			contract.LogWarn(fmt.Sprintf("Run history failed to record %s", s.Path), err)
			continue
		}
		recorded++
	}
	if err := store.EndRun(runID, time.Now(), outputPath, recorded); err != nil {
		contract.LogWarn("Failed to finalize run history", err)
	}
}

func historyStore(mgr contract.HistoryManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}
