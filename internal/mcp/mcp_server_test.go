package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/tpmplot/internal/contract"
	mcp_internal "github.com/huangsam/tpmplot/internal/mcp"
	"github.com/huangsam/tpmplot/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mysqlFixture = "../../core/testdata/testA_my_10Vu_50Wh.json"
	pgFixture    = "../../core/testdata/testA_pg_20Vu_50Wh.json"
)

func newBaseConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Keys:       schema.DefaultSeriesKeys,
		ZeroStreak: contract.DefaultZeroStreak,
		TimeCap:    contract.DefaultTimeCap,
		LabelBy:    schema.LabelByEngine,
		OutDir:     filepath.Join(t.TempDir(), "graphs"),
		Format:     schema.PNGImage,
		WidthIn:    8,
		HeightIn:   4,
		Workers:    2,
	}
}

func callTool(t *testing.T, cfg *contract.Config, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	// A nil manager means history is not tracked
	s := mcp_internal.NewMCPServer(cfg, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	cfg := newBaseConfig(t)

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		contains string
	}{
		{"summarize without paths", "summarize_tpm_files", map[string]any{}, "has no input files"},
		{"summarize zero streak below one", "summarize_tpm_files", map[string]any{"paths": []any{mysqlFixture}, "zero_streak": 0.0}, "zero-streak"},
		{"summarize bad label strategy", "summarize_tpm_files", map[string]any{"paths": []any{mysqlFixture}, "label_by": "color"}, "invalid label strategy"},
		{"summarize too many labels", "summarize_tpm_files", map[string]any{"paths": []any{mysqlFixture}, "labels": []any{"a", "b"}}, "2 labels for 1 files"},
		{"points without path", "get_tpm_points", map[string]any{}, "has no input files"},
		{"points missing file", "get_tpm_points", map[string]any{"path": "does-not-exist.json"}, "points failed"},
		{"render bad format", "render_tpm_chart", map[string]any{"paths": []any{mysqlFixture}, "format": "gif"}, "invalid format"},
		{"render too many labels", "render_tpm_chart", map[string]any{"paths": []any{mysqlFixture}, "labels": []any{"a", "b"}}, "2 labels for 1 files"},
		{"render name with separator", "render_tpm_chart", map[string]any{"paths": []any{mysqlFixture}, "name": "a/b"}, "path separators"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, cfg, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(res), tt.contains)
		})
	}
}

func TestMCPServerHandlers_Summarize(t *testing.T) {
	cfg := newBaseConfig(t)
	res := callTool(t, cfg, "summarize_tpm_files", map[string]any{
		"paths": []any{mysqlFixture, pgFixture},
	})
	require.False(t, res.IsError, resultText(res))

	var summaries []schema.SeriesSummary
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "MySQL", summaries[0].Label)
	assert.Equal(t, 5, summaries[0].PlottedSamples)
	assert.Equal(t, schema.StopZeroStreak, summaries[0].StopReason)
	assert.Equal(t, "PostgreSQL", summaries[1].Label)
	assert.Equal(t, schema.StopEnd, summaries[1].StopReason)
}

func TestMCPServerHandlers_SummarizeOverrides(t *testing.T) {
	cfg := newBaseConfig(t)
	res := callTool(t, cfg, "summarize_tpm_files", map[string]any{
		"paths":    []any{mysqlFixture},
		"time_cap": 1.0,
		"label_by": "vu",
	})
	require.False(t, res.IsError, resultText(res))

	var summaries []schema.SeriesSummary
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "10Vu", summaries[0].Label)
	assert.Equal(t, schema.StopTimeCap, summaries[0].StopReason)

	// The base config is never mutated by a tool call
	assert.Equal(t, contract.DefaultTimeCap, cfg.TimeCap)
	assert.Empty(t, cfg.Charts)
}

func TestMCPServerHandlers_Points(t *testing.T) {
	cfg := newBaseConfig(t)
	res := callTool(t, cfg, "get_tpm_points", map[string]any{"path": pgFixture})
	require.False(t, res.IsError, resultText(res))

	var series schema.PlotSeries
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &series))
	assert.Equal(t, "PostgreSQL", series.Label)
	assert.Equal(t, []float64{0, 1, 2, 3}, series.Truncated.ElapsedMinutes)
	assert.Equal(t, []int{900, 4300, 4700, 4650}, series.Truncated.Throughput)
}

func TestMCPServerHandlers_Render(t *testing.T) {
	cfg := newBaseConfig(t)
	outDir := t.TempDir()
	res := callTool(t, cfg, "render_tpm_chart", map[string]any{
		"paths":   []any{mysqlFixture, pgFixture},
		"name":    "between_db",
		"format":  "svg",
		"out_dir": outDir,
	})
	require.False(t, res.IsError, resultText(res))

	var payload struct {
		ImagePath string                 `json:"image_path"`
		Series    []schema.SeriesSummary `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &payload))
	assert.Equal(t, filepath.Join(outDir, "between_db.svg"), payload.ImagePath)
	assert.Len(t, payload.Series, 2)

	info, err := os.Stat(payload.ImagePath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestMCPServerHandlers_RenderLabels(t *testing.T) {
	cfg := newBaseConfig(t)
	res := callTool(t, cfg, "render_tpm_chart", map[string]any{
		"paths":   []any{mysqlFixture, pgFixture},
		"labels":  []any{"baseline", "candidate"},
		"out_dir": t.TempDir(),
	})
	require.False(t, res.IsError, resultText(res))

	var payload struct {
		Series []schema.SeriesSummary `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &payload))
	require.Len(t, payload.Series, 2)
	assert.Equal(t, "baseline", payload.Series[0].Label)
	assert.Equal(t, "candidate", payload.Series[1].Label)
}
