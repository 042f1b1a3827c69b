package schema

import "time"

// RunCounts are the per-run totals persisted with each history row.
type RunCounts struct {
	FilesScanned         int
	Entities             int
	BusinessComponents   int
	ViewPages            int
	DatabaseHintFiles    int
	Classes              int
	TotalBusinessMethods int
}

// CountsOf extracts the persisted totals from an analysis result.
func CountsOf(r *AnalysisResult) RunCounts {
	return RunCounts{
		FilesScanned:         r.FilesScanned,
		Entities:             len(r.Entities),
		BusinessComponents:   len(r.BusinessComponents),
		ViewPages:            len(r.ViewPages),
		DatabaseHintFiles:    len(r.DatabaseHints),
		Classes:              len(r.ClassMetrics),
		TotalBusinessMethods: r.Aggregate().TotalBusinessMethods,
	}
}

// RunRecord represents a row from the rnc_discovery_runs table.
type RunRecord struct {
	RunID       string
	ProjectName string
	ProjectPath string
	StartTime   time.Time
	EndTime     *time.Time
	DurationMs  *int64
	RunCounts
}

// ClassMetricsRecord represents a row from the rnc_class_metrics table.
type ClassMetricsRecord struct {
	RunID               string
	ClassName           string
	FilePath            string
	Role                string
	PublicMethods       int
	BusinessMethods     int
	BusinessMethodNames string // Comma-separated, declaration order
}
