package core

import (
	"context"
	"sync"

	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/huangsam/tpmplot/schema"
)

// PipelineOptions controls how each input file becomes a plotted series.
type PipelineOptions struct {
	Keys     []string             // Recognized series keys in priority order; empty means the defaults
	LabelBy  schema.LabelStrategy // Label derivation when no explicit label is given
	Truncate TruncateOptions
	Workers  int // Files processed concurrently; values below 1 act as 1
}

// PipelineOptionsForChart builds pipeline options from a fully resolved chart.
func PipelineOptionsForChart(chart schema.ChartSpec, workers int) PipelineOptions {
	opts := PipelineOptions{
		Keys:     chart.Keys,
		LabelBy:  schema.LabelStrategy(chart.LabelBy),
		Truncate: DefaultTruncateOptions(),
		Workers:  workers,
	}
	if chart.ZeroStreak != nil {
		opts.Truncate.MaxZeroStreak = *chart.ZeroStreak
	}
	if chart.TimeCap != nil {
		opts.Truncate.MaxElapsedMinutes = *chart.TimeCap
	}
	return opts
}

// ProcessFile loads, normalizes and truncates a single result file.
// The label is derived from opts.LabelBy; use processFileWithLabel for an explicit label.
func ProcessFile(path string, opts PipelineOptions) (schema.PlotSeries, error) {
	return processFileWithLabel(path, "", opts)
}

func processFileWithLabel(path, label string, opts PipelineOptions) (schema.PlotSeries, error) {
	loaded, err := LoadSeries(path, opts.Keys)
	if err != nil {
		return schema.PlotSeries{}, err
	}
	normalized, err := NormalizeSeries(loaded.Raw)
	if err != nil {
		return schema.PlotSeries{}, schema.WithPath(err, path)
	}
	return schema.PlotSeries{
		Label:     DeriveLabel(label, opts.LabelBy, path, loaded.Key),
		Path:      path,
		Key:       loaded.Key,
		RawCount:  normalized.Len(),
		Truncated: TruncateSeries(normalized, opts.Truncate),
	}, nil
}

// ProcessFiles runs every file through the pipeline using a pool of opts.Workers goroutines.
// Results keep the order of paths. labels[i], when present and non-empty, overrides the
// derived label of paths[i]. On failure the error of the earliest failing file is returned.
func ProcessFiles(ctx context.Context, paths, labels []string, opts PipelineOptions) ([]schema.PlotSeries, error) {
	results := make([]schema.PlotSeries, len(paths))
	errs := make([]error, len(paths))

	jobs := make(chan int, len(paths))
	for i := range paths {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range min(max(opts.Workers, 1), max(len(paths), 1)) {
		wg.Go(func() {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				label := ""
				if i < len(labels) {
					label = labels[i]
				}
				results[i], errs[i] = processFileWithLabel(paths[i], label, opts)
			}
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// processChart runs the pipeline for one resolved chart.
func processChart(ctx context.Context, chart schema.ChartSpec, cfg *contract.Config) ([]schema.PlotSeries, error) {
	return ProcessFiles(ctx, chart.Files, chart.Labels, PipelineOptionsForChart(chart, cfg.Workers))
}
