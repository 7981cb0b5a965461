package cmd

import (
	"github.com/huangsam/tpmplot/core"
	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/spf13/cobra"
)

// summaryCmd prints per-series summaries without rendering.
var summaryCmd = &cobra.Command{
	Use:   "summary [result-file...]",
	Short: "Summarize each truncated series without drawing a chart.",
	Long: `Run the same pipeline as plot and print one row per series: samples kept,
plotted duration, peak and mean TPM, and why the series ended.

Examples:
  tpmplot summary testA_my_10Vu_50Wh.json testA_pg_10Vu_50Wh.json
  tpmplot summary --chart between_db --output json`,
	PreRunE: chartSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummary(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot summarize series", err)
		}
	},
}
