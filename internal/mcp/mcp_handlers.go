package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/tpmplot/core"
	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/huangsam/tpmplot/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// renderResult is the payload returned by render_tpm_chart.
type renderResult struct {
	ImagePath string                 `json:"image_path"`
	Series    []schema.SeriesSummary `json:"series"`
}

func (h *toolHandler) handleSummarizeFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	chart := chartFromRequest(request)
	chart.Files = request.GetStringSlice("paths", nil)
	chart.Labels = request.GetStringSlice("labels", nil)

	if err := contract.RevalidateChart(cfg, chart); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: %v", err)), nil
	}

	series, err := core.GetPlotSeries(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(schema.SummarizeAll(series), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	chart := chartFromRequest(request)
	if p := request.GetString("path", ""); p != "" {
		chart.Files = []string{p}
	}

	if err := contract.RevalidateChart(cfg, chart); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: %v", err)), nil
	}

	series, err := core.GetPlotSeries(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("points failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(series[0], "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRenderChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Show = false
	chart := chartFromRequest(request)
	chart.Files = request.GetStringSlice("paths", nil)
	chart.Labels = request.GetStringSlice("labels", nil)
	chart.Name = request.GetString("name", "")
	chart.Title = request.GetString("title", "")
	chart.OutputDir = request.GetString("out_dir", "")

	if f := request.GetString("format", ""); f != "" {
		format := schema.ImageFormat(strings.ToLower(f))
		if _, ok := schema.ValidImageFormats[format]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: invalid format '%s'", f)), nil
		}
		cfg.Format = format
	}

	if err := contract.RevalidateChart(cfg, chart); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart parameters: %v", err)), nil
	}

	paths, summaries, err := core.RenderCharts(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(renderResult{ImagePath: paths[0], Series: summaries}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// chartFromRequest reads the truncation and label arguments shared by every tool.
// Absent numeric arguments stay nil so the global config fills them in.
func chartFromRequest(request mcp.CallToolRequest) schema.ChartSpec {
	var chart schema.ChartSpec
	args := request.GetArguments()
	if _, ok := args["zero_streak"]; ok {
		v := request.GetInt("zero_streak", 0)
		chart.ZeroStreak = &v
	}
	if _, ok := args["time_cap"]; ok {
		v := request.GetFloat("time_cap", 0)
		chart.TimeCap = &v
	}
	chart.LabelBy = request.GetString("label_by", "")
	return chart
}
