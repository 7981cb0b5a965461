package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/tpmplot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeries(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		keys    []string
		wantKey string
		wantLen int
		wantErr error
	}{
		{
			name:    "mysql key",
			data:    `{"MySQL tpm": {"2024-01-01 10:00:00": 5}}`,
			wantKey: "MySQL tpm",
			wantLen: 1,
		},
		{
			name:    "postgres key",
			data:    `{"PostgreSQL tpm": {"2024-01-01 10:00:00": 5, "2024-01-01 10:01:00": 6}}`,
			wantKey: "PostgreSQL tpm",
			wantLen: 2,
		},
		{
			name:    "first non-empty recognized key wins",
			data:    `{"MySQL tpm": {}, "PostgreSQL tpm": {"2024-01-01 10:00:00": 5}}`,
			wantKey: "PostgreSQL tpm",
			wantLen: 1,
		},
		{
			name:    "priority order when both are populated",
			data:    `{"PostgreSQL tpm": {"2024-01-01 10:00:00": 1}, "MySQL tpm": {"2024-01-01 10:00:00": 2, "2024-01-01 10:01:00": 3}}`,
			wantKey: "MySQL tpm",
			wantLen: 2,
		},
		{
			name:    "only empty object is still returned",
			data:    `{"MySQL tpm": {}}`,
			wantKey: "MySQL tpm",
			wantLen: 0,
		},
		{
			name:    "custom keys",
			data:    `{"Oracle tpm": {"2024-01-01 10:00:00": 5}}`,
			keys:    []string{"Oracle tpm"},
			wantKey: "Oracle tpm",
			wantLen: 1,
		},
		{
			name:    "unrelated keys ignored",
			data:    `{"NOPM": 5, "MySQL tpm": {"2024-01-01 10:00:00": 5}}`,
			wantKey: "MySQL tpm",
			wantLen: 1,
		},
		{name: "missing key", data: `{"NOPM": {}}`, wantErr: schema.ErrMissingKey},
		{name: "invalid json", data: `{"MySQL tpm": `, wantErr: schema.ErrParse},
		{name: "top-level array", data: `[1, 2]`, wantErr: schema.ErrParse},
		{name: "series not an object", data: `{"MySQL tpm": [1, 2]}`, wantErr: schema.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, raw, err := ParseSeries([]byte(tt.data), tt.keys)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Len(t, raw, tt.wantLen)
		})
	}
}

func TestParseSeriesValues(t *testing.T) {
	_, raw, err := ParseSeries([]byte(`{"MySQL tpm": {"a": 1.5, "b": "7", "c": null, "d": true, "a": 2}}`), nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, raw["a"], "duplicate keys keep the last value")
	assert.Equal(t, "7", raw["b"])
	assert.Nil(t, raw["c"])
	assert.Equal(t, true, raw["d"])
}

func TestLoadSeries(t *testing.T) {
	loaded, err := LoadSeries(filepath.Join("testdata", "testA_my_10Vu_50Wh.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, "MySQL tpm", loaded.Key)
	assert.Len(t, loaded.Raw, 7)
	assert.Equal(t, filepath.Join("testdata", "testA_my_10Vu_50Wh.json"), loaded.Path)
}

func TestLoadSeriesErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeries(filepath.Join(dir, "nope.json"), nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("error carries the path", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"other": {}}`), 0o644))
		_, err := LoadSeries(path, nil)
		require.ErrorIs(t, err, schema.ErrMissingKey)

		var se *schema.SeriesError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, path, se.Path)
	})
}
