// Package cmd defines the command-line interface for rnc.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent file workers")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of root-relative path prefixes or patterns to ignore (e.g. target/,*Test.java)")
	rootCmd.PersistentFlags().String("summary", string(schema.TextSummary), "Summary format on stdout: text or json or yaml")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "auto", "Enable colored labels in output (yes/no/auto)")
	rootCmd.PersistentFlags().String("emoji", "auto", "Enable emojis in summary headers (yes/no/auto)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("log-level", "info", "Execution log level: debug or info or warn or error")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of discoverCmd to Viper
	discoverCmd.Flags().String("output-dir", "", "Directory for the report artifacts (default <project>/output)")
	discoverCmd.Flags().Bool("xlsx", true, "Write the XLSX workbook")
	discoverCmd.Flags().Bool("html", true, "Write the HTML report")
	discoverCmd.Flags().String("classifier", string(schema.TreeStrategy), "Method classifier strategy: tree or text")
	if err := viper.BindPFlags(discoverCmd.Flags()); err != nil {
		contract.LogFatal("Error binding discover flags", err)
	}

	historyStatusCmd.Flags().String("output", "", "Write the status to this file instead of stdout")

	// Bind all flags of historyExportCmd to Viper
	historyExportCmd.Flags().String("output-file", "", "Prefix for the exported Parquet files")
	if err := viper.BindPFlags(historyExportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history export flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
