package core

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/tpmplot/schema"
)

type sample struct {
	at  time.Time
	tpm int
}

// NormalizeSeries converts a raw series into chronologically ordered elapsed minutes
// and integer throughput. Timestamps are ordered by their parsed time.
func NormalizeSeries(raw schema.RawSeries) (schema.NormalizedSeries, error) {
	if len(raw) == 0 {
		return schema.NormalizedSeries{}, &schema.SeriesError{Err: schema.ErrEmptySeries}
	}

	// Walk keys in a fixed order so the reported field is deterministic.
	keys := slices.Sorted(maps.Keys(raw))
	samples := make([]sample, 0, len(keys))
	for _, key := range keys {
		at, err := time.Parse(schema.TimestampLayout, key)
		if err != nil {
			return schema.NormalizedSeries{}, &schema.SeriesError{Field: key, Err: fmt.Errorf("%w: %v", schema.ErrMalformedTimestamp, err)}
		}
		tpm, err := CoerceThroughput(raw[key])
		if err != nil {
			return schema.NormalizedSeries{}, &schema.SeriesError{Field: key, Err: err}
		}
		samples = append(samples, sample{at: at, tpm: tpm})
	}
	slices.SortStableFunc(samples, func(a, b sample) int { return a.at.Compare(b.at) })

	out := schema.NormalizedSeries{
		ElapsedMinutes: make([]float64, len(samples)),
		Throughput:     make([]int, len(samples)),
	}
	t0 := samples[0].at
	for i, s := range samples {
		// Unix seconds avoid the ~292 year ceiling of time.Duration.
		out.ElapsedMinutes[i] = float64(s.at.Unix()-t0.Unix()) / 60
		out.Throughput[i] = s.tpm
	}
	return out, nil
}

// CoerceThroughput converts a decoded JSON value into a non-negative integer count.
// Numbers are truncated toward zero and numeric strings are parsed as base-10 integers.
func CoerceThroughput(v any) (int, error) {
	switch val := v.(type) {
	case float64:
		return fromFloat(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return fromInt(n)
		}
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", schema.ErrInvalidThroughput, val.String())
		}
		return fromFloat(f)
	case int:
		return fromInt(int64(val))
	case int64:
		return fromInt(val)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", schema.ErrInvalidThroughput, val)
		}
		return fromInt(n)
	case nil:
		return 0, fmt.Errorf("%w: null", schema.ErrInvalidThroughput)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", schema.ErrInvalidThroughput, v)
	}
}

func fromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", schema.ErrInvalidThroughput, f)
	}
	return int(math.Trunc(f)), nil
}

func fromInt(n int64) (int, error) {
	if n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", schema.ErrInvalidThroughput, n)
	}
	return int(n), nil
}
