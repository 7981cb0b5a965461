package cmd

import (
	"github.com/huangsam/tpmplot/core"
	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/spf13/cobra"
)

// pointsCmd prints the plotted samples of every series.
var pointsCmd = &cobra.Command{
	Use:   "points [result-file...]",
	Short: "Print the elapsed-minute and TPM pairs that would be plotted.",
	Long: `Emit every kept sample in long format (label, path, index, elapsed minutes, TPM)
for use in spreadsheets or other plotting tools.

Examples:
  tpmplot points testA_my_10Vu_50Wh.json --output csv
  tpmplot points --all --output parquet --output-file points.parquet`,
	PreRunE: chartSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePoints(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot print points", err)
		}
	},
}
