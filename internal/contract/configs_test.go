package contract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rncdiscover/rnc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func validInput(path string) *ConfigRawInput {
	return &ConfigRawInput{
		ProjectPathStr: path,
		Workers:        4,
		Emoji:          "no",
		Color:          "no",
		XLSX:           true,
		HTML:           true,
	}
}

func intPtr(v int) *int { return &v }

func TestProcessAndValidate(t *testing.T) {
	project := t.TempDir()
	file := filepath.Join(project, "pom.xml")
	require.NoError(t, os.WriteFile(file, []byte("<project/>"), 0o644))

	tests := []struct {
		name      string
		mutate    func(*ConfigRawInput)
		expectErr error
		wantErr   bool
		check     func(*testing.T, *Config)
	}{
		{
			name: "valid minimal config",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, project, cfg.ProjectPath)
				assert.Equal(t, filepath.Base(project), cfg.ProjectName)
				assert.Equal(t, filepath.Join(project, schema.OutputFolder), cfg.OutputDir)
				assert.Equal(t, schema.TreeStrategy, cfg.Classifier)
				assert.Equal(t, schema.TextSummary, cfg.Summary)
				assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
				assert.Equal(t, schema.DefaultThresholds(), cfg.Thresholds)
				assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
				assert.Empty(t, cfg.Excludes)
				assert.True(t, cfg.WriteXLSX)
				assert.False(t, cfg.UseColors)
			},
		},
		{
			name:      "missing project path",
			mutate:    func(in *ConfigRawInput) { in.ProjectPathStr = "" },
			expectErr: ErrMissingProjectPath,
		},
		{
			name:      "project path does not exist",
			mutate:    func(in *ConfigRawInput) { in.ProjectPathStr = filepath.Join(project, "missing") },
			expectErr: ErrNotDirectory,
		},
		{
			name:      "project path is a file",
			mutate:    func(in *ConfigRawInput) { in.ProjectPathStr = file },
			expectErr: ErrNotDirectory,
		},
		{
			name:    "zero workers",
			mutate:  func(in *ConfigRawInput) { in.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "unknown classifier",
			mutate:  func(in *ConfigRawInput) { in.Classifier = "ast" },
			wantErr: true,
		},
		{
			name:   "text classifier upper case",
			mutate: func(in *ConfigRawInput) { in.Classifier = "TEXT" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.TextStrategy, cfg.Classifier)
			},
		},
		{
			name:    "unknown summary",
			mutate:  func(in *ConfigRawInput) { in.Summary = "csv" },
			wantErr: true,
		},
		{
			name:    "invalid emoji",
			mutate:  func(in *ConfigRawInput) { in.Emoji = "sometimes" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(in *ConfigRawInput) { in.LogLevel = "loud" },
			wantErr: true,
		},
		{
			name:    "mysql without connection string",
			mutate:  func(in *ConfigRawInput) { in.HistoryBackend = "mysql" },
			wantErr: true,
		},
		{
			name: "sqlite history",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "SQLite"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
			},
		},
		{
			name: "excludes split and trimmed",
			mutate: func(in *ConfigRawInput) {
				in.Exclude = "generated/, *Test.java ,"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"generated/", "*Test.java"}, cfg.Excludes)
			},
		},
		{
			name: "relative output dir",
			mutate: func(in *ConfigRawInput) {
				in.OutputDir = "reports"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, filepath.Join(project, "reports"), cfg.OutputDir)
				assert.Equal(t, filepath.Join(project, "reports", "rnc-"+filepath.Base(project)+".md"), cfg.ReportPath(".md"))
			},
		},
		{
			name: "threshold overrides",
			mutate: func(in *ConfigRawInput) {
				in.Thresholds.MinLocals = intPtr(4)
				in.Thresholds.MediumBody = intPtr(800)
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4, cfg.Thresholds.MinLocals)
				assert.Equal(t, 800, cfg.Thresholds.MediumBody)
				assert.Equal(t, 1000, cfg.Thresholds.LargeBody)
			},
		},
		{
			name:    "negative threshold",
			mutate:  func(in *ConfigRawInput) { in.Thresholds.LargeBody = intPtr(-1) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(project)
			if tt.mutate != nil {
				tt.mutate(input)
			}
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			switch {
			case tt.expectErr != nil:
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectErr), "got %v", err)
			case tt.wantErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				if tt.check != nil {
					tt.check(t, cfg)
				}
			}
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite any", schema.SQLiteBackend, "", false},
		{"none any", schema.NoneBackend, "ignored", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/rnc", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/rnc", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=rnc", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Excludes: []string{"target/"}}
	clone := cfg.Clone()
	clone.Excludes[0] = "build/"
	assert.Equal(t, "target/", cfg.Excludes[0])
}

func TestRevalidateProjectPath(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{}
	require.NoError(t, RevalidateProjectPath(cfg, dir))
	assert.Equal(t, filepath.Base(dir), cfg.ProjectName)
	assert.Equal(t, filepath.Join(cfg.ProjectPath, schema.OutputFolder), cfg.OutputDir)

	assert.ErrorIs(t, RevalidateProjectPath(cfg, ""), ErrMissingProjectPath)
	assert.ErrorIs(t, RevalidateProjectPath(cfg, filepath.Join(dir, "missing")), ErrNotDirectory)
}

func TestRevalidateClassifier(t *testing.T) {
	cfg := &Config{Classifier: schema.TreeStrategy}
	require.NoError(t, RevalidateClassifier(cfg, "TEXT"))
	assert.Equal(t, schema.TextStrategy, cfg.Classifier)
	assert.Error(t, RevalidateClassifier(cfg, "ast"))
	assert.Equal(t, schema.TextStrategy, cfg.Classifier)
}
