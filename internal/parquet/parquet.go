// Package parquet provides data structures and functions for exporting rnc
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/rncdiscover/rnc/schema"
)

// DiscoveryRun represents a single discovery run with its totals.
// This struct maps to the rnc_discovery_runs database table.
type DiscoveryRun struct {
	// RunID is the UUID of this run
	RunID string `parquet:"run_id,snappy"`

	// ProjectName is the base name of the scanned project directory
	ProjectName string `parquet:"project_name,snappy,dict"`

	// ProjectPath is the absolute path that was scanned
	ProjectPath string `parquet:"project_path,snappy,dict"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	FilesScanned         int32 `parquet:"files_scanned,snappy"`
	Entities             int32 `parquet:"entities,snappy"`
	BusinessComponents   int32 `parquet:"business_components,snappy"`
	ViewPages            int32 `parquet:"view_pages,snappy"`
	DatabaseHintFiles    int32 `parquet:"database_hint_files,snappy"`
	Classes              int32 `parquet:"classes,snappy"`
	TotalBusinessMethods int32 `parquet:"total_business_methods,snappy"`
}

// ClassMetrics represents the business-rule density of one class in one run.
// This struct maps to the rnc_class_metrics database table.
type ClassMetrics struct {
	// RunID references the parent discovery run
	RunID string `parquet:"run_id,snappy,dict"`

	ClassName string `parquet:"class_name,snappy"`

	// FilePath is relative to the project root
	FilePath string `parquet:"file_path,snappy"`

	// Role is the coarse class role derived from its name
	Role string `parquet:"role,snappy,dict"`

	PublicMethods   int32 `parquet:"public_methods,snappy"`
	BusinessMethods int32 `parquet:"business_methods,snappy"`

	// BusinessMethodNames lists the business-rule methods in declaration order
	BusinessMethodNames []string `parquet:"business_method_names,list"`
}

// writeParquet writes rows of any struct type to a new Parquet file.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteDiscoveryRunsParquet writes a slice of DiscoveryRun structs to a Parquet file.
func WriteDiscoveryRunsParquet(data []DiscoveryRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteClassMetricsParquet writes a slice of ClassMetrics structs to a Parquet file.
func WriteClassMetricsParquet(data []ClassMetrics, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to DiscoveryRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []DiscoveryRun {
	result := make([]DiscoveryRun, len(records))
	for i, r := range records {
		result[i] = DiscoveryRun{
			RunID:                r.RunID,
			ProjectName:          r.ProjectName,
			ProjectPath:          r.ProjectPath,
			StartTime:            r.StartTime,
			EndTime:              r.EndTime,
			RunDurationMs:        r.DurationMs,
			FilesScanned:         int32(r.FilesScanned),
			Entities:             int32(r.Entities),
			BusinessComponents:   int32(r.BusinessComponents),
			ViewPages:            int32(r.ViewPages),
			DatabaseHintFiles:    int32(r.DatabaseHintFiles),
			Classes:              int32(r.Classes),
			TotalBusinessMethods: int32(r.TotalBusinessMethods),
		}
	}
	return result
}

// ConvertClassMetricsRecords converts schema.ClassMetricsRecord to ClassMetrics for Parquet export.
func ConvertClassMetricsRecords(records []schema.ClassMetricsRecord) []ClassMetrics {
	result := make([]ClassMetrics, len(records))
	for i, r := range records {
		var names []string
		if r.BusinessMethodNames != "" {
			names = strings.Split(r.BusinessMethodNames, ",")
		}
		result[i] = ClassMetrics{
			RunID:               r.RunID,
			ClassName:           r.ClassName,
			FilePath:            r.FilePath,
			Role:                r.Role,
			PublicMethods:       int32(r.PublicMethods),
			BusinessMethods:     int32(r.BusinessMethods),
			BusinessMethodNames: names,
		}
	}
	return result
}
