// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the TPM plot MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"TPM Plot Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: summarize_tpm_files ---
	s.AddTool(mcp.NewTool("summarize_tpm_files",
		mcp.WithDescription("Load TPM benchmark result files, truncate idle tails and summarize each series."),
		mcp.WithArray("paths", mcp.Description("Paths to JSON result files."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithArray("labels", mcp.Description("Legend labels, index-aligned with paths."), mcp.WithStringItems()),
		mcp.WithNumber("zero_streak", mcp.Description("Consecutive trailing zero samples that end a series. Defaults to 2.")),
		mcp.WithNumber("time_cap", mcp.Description("Elapsed-minutes ceiling. Negative disables the cap.")),
		mcp.WithString("label_by", mcp.Description("How legend labels are derived from file names."), mcp.Enum("engine", "vu", "file")),
	), h.handleSummarizeFiles)

	// --- 2. Tool: get_tpm_points ---
	s.AddTool(mcp.NewTool("get_tpm_points",
		mcp.WithDescription("Return the truncated elapsed-minutes and throughput arrays of a single result file."),
		mcp.WithString("path", mcp.Description("Path to a JSON result file."), mcp.Required()),
		mcp.WithNumber("zero_streak", mcp.Description("Consecutive trailing zero samples that end a series.")),
		mcp.WithNumber("time_cap", mcp.Description("Elapsed-minutes ceiling. Negative disables the cap.")),
	), h.handleGetPoints)

	// --- 3. Tool: render_tpm_chart ---
	s.AddTool(mcp.NewTool("render_tpm_chart",
		mcp.WithDescription("Render a TPM comparison chart for the given result files and return the image path."),
		mcp.WithArray("paths", mcp.Description("Paths to JSON result files."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithArray("labels", mcp.Description("Legend labels, index-aligned with paths."), mcp.WithStringItems()),
		mcp.WithString("name", mcp.Description("Output file name without extension. Defaults to 'tpm_comparison'.")),
		mcp.WithString("title", mcp.Description("Chart title.")),
		mcp.WithString("format", mcp.Description("Image format."), mcp.Enum("png", "svg", "pdf")),
		mcp.WithString("out_dir", mcp.Description("Directory the chart is written to.")),
		mcp.WithNumber("zero_streak", mcp.Description("Consecutive trailing zero samples that end a series.")),
		mcp.WithNumber("time_cap", mcp.Description("Elapsed-minutes ceiling. Negative disables the cap.")),
		mcp.WithString("label_by", mcp.Description("How legend labels are derived from file names."), mcp.Enum("engine", "vu", "file")),
	), h.handleRenderChart)

	return s
}

// StartMCPServer starts the TPM plot MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
