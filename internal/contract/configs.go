package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/rncdiscover/rnc/schema"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)


// Config holds the runtime configuration for a discovery run.
// This struct remains the "final, validated" config.
type Config struct {
	ProjectPath string // Absolute project root
	ProjectName string // Base name of ProjectPath
	OutputDir   string // Absolute directory receiving the report artifacts
	Workers     int
	Excludes    []string

	WriteXLSX bool
	WriteHTML bool

	Classifier schema.ClassifierStrategy
	Thresholds schema.Thresholds

	Summary   schema.SummaryMode
	Width     int  // Terminal width override (0 = auto-detect)
	UseEmojis bool // Enable emojis in summary headers
	UseColors bool // Enable colored labels in summary tables

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel zapcore.Level
}

// ThresholdsRawInput holds classifier threshold overrides from the YAML config file.
type ThresholdsRawInput struct {
	MinLocals    *int `mapstructure:"min-locals"`
	MinReturns   *int `mapstructure:"min-returns"`
	LargeBody    *int `mapstructure:"large-body"`
	MediumLocals *int `mapstructure:"medium-locals"`
	MediumBody   *int `mapstructure:"medium-body"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ProjectPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Workers          int    `mapstructure:"workers"`
	Exclude          string `mapstructure:"exclude"`
	Summary          string `mapstructure:"summary"`
	Width            int    `mapstructure:"width"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	LogLevel         string `mapstructure:"log-level"`

	// --- Fields from discoverCmd.Flags() ---
	OutputDir  string `mapstructure:"output-dir"`
	XLSX       bool   `mapstructure:"xlsx"`
	HTML       bool   `mapstructure:"html"`
	Classifier string `mapstructure:"classifier"`

	// --- Classifier thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// ReportPath returns the artifact path for the given extension, e.g. ".md".
func (c *Config) ReportPath(ext string) string {
	return filepath.Join(c.OutputDir, schema.ReportPrefix+c.ProjectName+ext)
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := resolveProjectPath(cfg, input); err != nil {
		return err
	}
	return nil
}

// ProcessSharedInputs validates only the settings shared by every command.
// It is used by commands that do not take a project path.
func ProcessSharedInputs(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	return processThresholds(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.WriteXLSX = input.XLSX
	cfg.WriteHTML = input.HTML
	cfg.Width = input.Width

	emojis, err := ParseAutoBool(input.Emoji, os.Stdout)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseAutoBool(input.Color, os.Stdout)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Classifier Validation ---
	cfg.Classifier = schema.TreeStrategy
	if input.Classifier != "" {
		cfg.Classifier = schema.ClassifierStrategy(strings.ToLower(input.Classifier))
	}
	if _, ok := schema.ValidClassifierStrategies[cfg.Classifier]; !ok {
		return fmt.Errorf("invalid classifier '%s'. must be tree, text", input.Classifier)
	}

	// --- 3. Summary Validation ---
	cfg.Summary = schema.TextSummary
	if input.Summary != "" {
		cfg.Summary = schema.SummaryMode(strings.ToLower(input.Summary))
	}
	if _, ok := schema.ValidSummaryModes[cfg.Summary]; !ok {
		return fmt.Errorf("invalid summary format '%s'. must be text, json, yaml", input.Summary)
	}

	// --- 4. Backend Validation ---
	cfg.HistoryBackend = schema.NoneBackend
	if input.HistoryBackend != "" {
		cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// --- 5. Log Level ---
	cfg.LogLevel = zapcore.InfoLevel
	if input.LogLevel != "" {
		level, err := zapcore.ParseLevel(input.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level value: %w", err)
		}
		cfg.LogLevel = level
	}

	// --- 6. Excludes Processing ---
	cfg.Excludes = nil
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	return nil
}

// processThresholds starts from the default thresholds and applies config overrides.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	t := schema.DefaultThresholds()
	overrides := []struct {
		name  string
		value *int
		dest  *int
	}{
		{"min-locals", input.Thresholds.MinLocals, &t.MinLocals},
		{"min-returns", input.Thresholds.MinReturns, &t.MinReturns},
		{"large-body", input.Thresholds.LargeBody, &t.LargeBody},
		{"medium-locals", input.Thresholds.MediumLocals, &t.MediumLocals},
		{"medium-body", input.Thresholds.MediumBody, &t.MediumBody},
	}
	for _, o := range overrides {
		if o.value == nil {
			continue
		}
		if *o.value < 0 {
			return fmt.Errorf("threshold %s must not be negative (received %d)", o.name, *o.value)
		}
		*o.dest = *o.value
	}
	cfg.Thresholds = t
	return nil
}

// resolveProjectPath makes the project path absolute, checks it is a directory
// and derives the project name and output directory.
func resolveProjectPath(cfg *Config, input *ConfigRawInput) error {
	if strings.TrimSpace(input.ProjectPathStr) == "" {
		return ErrMissingProjectPath
	}
	absPath, err := filepath.Abs(input.ProjectPathStr)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", input.ProjectPathStr, err)
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("'%s': %w", absPath, ErrNotDirectory)
	}
	cfg.ProjectPath = absPath
	cfg.ProjectName = filepath.Base(absPath)

	switch {
	case input.OutputDir == "":
		cfg.OutputDir = filepath.Join(absPath, schema.OutputFolder)
	case filepath.IsAbs(input.OutputDir):
		cfg.OutputDir = filepath.Clean(input.OutputDir)
	default:
		cfg.OutputDir = filepath.Join(absPath, input.OutputDir)
	}
	return nil
}

// RevalidateProjectPath points a cloned config at another project root.
// The output directory falls back to the default folder under that root.
func RevalidateProjectPath(cfg *Config, path string) error {
	return resolveProjectPath(cfg, &ConfigRawInput{ProjectPathStr: path})
}

// RevalidateClassifier overrides the classifier strategy of a cloned config.
func RevalidateClassifier(cfg *Config, classifier string) error {
	strategy := schema.ClassifierStrategy(strings.ToLower(classifier))
	if _, ok := schema.ValidClassifierStrategies[strategy]; !ok {
		return fmt.Errorf("invalid classifier '%s'. must be tree, text", classifier)
	}
	cfg.Classifier = strategy
	return nil
}
