package schema

// Summarize computes the summary row for a processed series.
func Summarize(s PlotSeries) SeriesSummary {
	t := s.Truncated
	summary := SeriesSummary{
		Label:          s.Label,
		Path:           s.Path,
		Key:            s.Key,
		RawSamples:     s.RawCount,
		PlottedSamples: t.Len(),
		StopReason:     t.Reason,
	}
	if t.Len() == 0 {
		return summary
	}

	summary.DurationMinutes = t.ElapsedMinutes[t.Len()-1]
	total := 0
	for _, v := range t.Throughput {
		total += v
		summary.PeakTPM = max(summary.PeakTPM, v)
	}
	summary.MeanTPM = float64(total) / float64(t.Len())
	return summary
}

// SummarizeAll computes summaries for every series, preserving order.
func SummarizeAll(series []PlotSeries) []SeriesSummary {
	out := make([]SeriesSummary, len(series))
	for i, s := range series {
		out[i] = Summarize(s)
	}
	return out
}

// FlattenPoints converts series into long-format point rows, preserving order.
func FlattenPoints(series []PlotSeries) []PointRecord {
	var out []PointRecord
	for _, s := range series {
		t := s.Truncated
		for i := range t.Len() {
			out = append(out, PointRecord{
				Label:          s.Label,
				Path:           s.Path,
				Index:          i,
				ElapsedMinutes: t.ElapsedMinutes[i],
				TPM:            t.Throughput[i],
			})
		}
	}
	return out
}

// MaxElapsed returns the largest plotted elapsed minute across all series.
func MaxElapsed(series []PlotSeries) float64 {
	var m float64
	for _, s := range series {
		if n := s.Truncated.Len(); n > 0 {
			m = max(m, s.Truncated.ElapsedMinutes[n-1])
		}
	}
	return m
}
