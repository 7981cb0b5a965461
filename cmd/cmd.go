// Package cmd defines the command-line interface for tpmplot.
package cmd

import (
	"github.com/huangsam/tpmplot/internal/contract"
	"github.com/huangsam/tpmplot/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringSlice("keys", nil, "Comma-separated top-level series keys to look for (default \"MySQL tpm,PostgreSQL tpm\")")
	rootCmd.PersistentFlags().Int("zero-streak", contract.DefaultZeroStreak, "Consecutive zero samples that end a series")
	rootCmd.PersistentFlags().Float64("time-cap", contract.DefaultTimeCap, "Elapsed-minutes ceiling, at most 10080; negative disables the cap")
	rootCmd.PersistentFlags().String("label-by", string(schema.LabelByEngine), "Legend label strategy: engine or vu or file")
	rootCmd.PersistentFlags().StringArray("label", nil, "Explicit legend label, repeat once per file in order")
	rootCmd.PersistentFlags().String("name", contract.DefaultChartName, "Chart name used for the output image")
	rootCmd.PersistentFlags().String("title", "", "Chart title")
	rootCmd.PersistentFlags().String("chart", "", "Process a named chart from the config file")
	rootCmd.PersistentFlags().Bool("all", false, "Process every named chart from the config file")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for the run history (file path for sqlite)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in status lines (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of plotCmd to Viper
	plotCmd.Flags().String("out-dir", contract.DefaultOutDir, "Directory charts are written to")
	plotCmd.Flags().String("format", string(schema.PNGImage), "Image format: png or svg or pdf")
	plotCmd.Flags().Float64("width-in", contract.DefaultWidthIn, "Chart width in inches")
	plotCmd.Flags().Float64("height-in", contract.DefaultHeightIn, "Chart height in inches")
	plotCmd.Flags().Bool("show", false, "Open each chart with the system image viewer")
	if err := viper.BindPFlags(plotCmd.Flags()); err != nil {
		contract.LogFatal("Error binding plot flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
