package core

import (
	"fmt"
	"os"

	"github.com/huangsam/tpmplot/schema"
	"github.com/tidwall/gjson"
)

// LoadSeries reads the result file at path and returns the time series stored under
// the first recognized key. Keys are checked in priority order; an empty keys slice
// means schema.DefaultSeriesKeys.
func LoadSeries(path string, keys []string) (schema.LoadedSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.LoadedSeries{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	key, raw, err := ParseSeries(data, keys)
	if err != nil {
		return schema.LoadedSeries{}, schema.WithPath(err, path)
	}
	return schema.LoadedSeries{Path: path, Key: key, Raw: raw}, nil
}

// ParseSeries extracts the series from a JSON document.
//
// When several recognized keys are present, the first one holding a non-empty
// object wins. A repeated key keeps its last value.
func ParseSeries(data []byte, keys []string) (string, schema.RawSeries, error) {
	if !gjson.ValidBytes(data) {
		return "", nil, &schema.SeriesError{Err: schema.ErrParse}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return "", nil, &schema.SeriesError{Err: fmt.Errorf("%w: top-level value is not an object", schema.ErrParse)}
	}
	if len(keys) == 0 {
		keys = schema.DefaultSeriesKeys
	}

	top := make(map[string]gjson.Result)
	root.ForEach(func(k, v gjson.Result) bool {
		top[k.String()] = v
		return true
	})

	matched := ""
	for _, key := range keys {
		v, ok := top[key]
		if !ok {
			continue
		}
		if matched == "" {
			matched = key
		}
		if v.IsObject() && hasMembers(v) {
			matched = key
			break
		}
	}
	if matched == "" {
		return "", nil, &schema.SeriesError{Err: fmt.Errorf("%w (looked for %q)", schema.ErrMissingKey, keys)}
	}

	value := top[matched]
	if !value.IsObject() {
		return "", nil, &schema.SeriesError{Field: matched, Err: fmt.Errorf("%w: series is not an object", schema.ErrParse)}
	}

	raw := make(schema.RawSeries)
	value.ForEach(func(k, v gjson.Result) bool {
		raw[k.String()] = v.Value()
		return true
	})
	return matched, raw, nil
}

func hasMembers(obj gjson.Result) bool {
	found := false
	obj.ForEach(func(_, _ gjson.Result) bool {
		found = true
		return false
	})
	return found
}
