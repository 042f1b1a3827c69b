package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/internal/history"
	"github.com/rncdiscover/rnc/schema"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "rnc",
	Short:              "Discover entities, business components and business rules in Java/JSF projects.",
	Long:               `rnc statically scans a Java/JSF project tree and writes a discovery report of its persistence entities, managed beans, JSF pages, database configuration and business-rule density.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("RNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("summary", schema.TextSummary)
	viper.SetDefault("classifier", schema.TreeStrategy)
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("xlsx", true)
	viper.SetDefault("html", true)
	viper.SetDefault("color", "auto")
	viper.SetDefault("emoji", "auto")
	viper.SetDefault("log-level", "info")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".rnc") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// unmarshalInput merges defaults, file, env and flags into the raw input.
func unmarshalInput() error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return nil
}

// sharedSetup unmarshals config, validates the project path and opens the run history.
func sharedSetup(_ context.Context, cmd *cobra.Command, args []string) error {
	if err := unmarshalInput(); err != nil {
		return err
	}

	// Positional arguments are not handled by Viper.
	input.ProjectPathStr = ""
	if len(args) == 1 {
		input.ProjectPathStr = args[0]
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		if errors.Is(err, contract.ErrMissingProjectPath) {
			return fmt.Errorf("%w\nUsage: %s", err, cmd.UseLine())
		}
		return err
	}
	color.NoColor = !cfg.UseColors

	if err := history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		// Run history never blocks a discovery.
		contract.LogWarn("Run history disabled", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// commonSetup validates the settings shared by commands without a project path.
func commonSetup(_ *cobra.Command, _ []string) error {
	if err := unmarshalInput(); err != nil {
		return err
	}
	if err := contract.ProcessSharedInputs(cfg, input); err != nil {
		return err
	}
	color.NoColor = !cfg.UseColors
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
