package cmd

import (
	"github.com/huangsam/tpmplot/core"
	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/spf13/cobra"
)

// plotCmd renders comparison charts.
var plotCmd = &cobra.Command{
	Use:   "plot [result-file...]",
	Short: "Render a TPM comparison chart from benchmark result files.",
	Long: `Load each result file, sort samples by timestamp, convert them to elapsed
minutes and drop the idle tail before drawing every series on one chart.

A series ends at the first sample that completes a run of --zero-streak zeros,
or at the first sample past --time-cap minutes when a cap is set.

Examples:
  # Compare MySQL and PostgreSQL at the same load
  tpmplot plot testA_my_10Vu_50Wh.json testA_pg_10Vu_50Wh.json --name between_db

  # Compare virtual-user counts and cap the axis at 16 minutes
  tpmplot plot results/testA_my_*Vu_50Wh.json --label-by vu --time-cap 16

  # Render every chart listed in .tpmplot.yaml
  tpmplot plot --all --format svg`,
	PreRunE: chartSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePlot(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot plot charts", err)
		}
	},
}
