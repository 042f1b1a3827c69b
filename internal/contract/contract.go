// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/rncdiscover/rnc/schema"
)

// Fatal input faults. Each one maps to its own process exit code.
var (
	ErrMissingProjectPath = errors.New("project path not provided")
	ErrNotDirectory       = errors.New("not a valid directory")
)

// JavaParser turns one Java source file into its declared types.
// Implementations must be safe for concurrent use.
type JavaParser interface {
	// Parse returns the class and interface declarations of src, outer types first.
	// A file that cannot be parsed returns an error and contributes no declarations.
	Parse(ctx context.Context, path string, src []byte) ([]schema.TypeDecl, error)
}

// HistoryStore defines the interface for tracking discovery runs and their class metrics.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its unique ID
	BeginRun(projectName, projectPath string, startTime time.Time) (string, error)

	// EndRun updates the run with completion data
	EndRun(runID string, endTime time.Time, counts schema.RunCounts) error

	// RecordClassMetrics stores one class metrics record for a run
	RecordClassMetrics(runID string, metrics schema.ClassBusinessMetrics) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllClassMetrics returns every recorded class metrics row
	GetAllClassMetrics() ([]schema.ClassMetricsRecord, error)

	// Close closes the underlying connection
	Close() error
}
