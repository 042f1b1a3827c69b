package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/internal/parquet"
)

// ExportParquet writes the whole run history to <prefix>.discovery_runs.parquet
// and <prefix>.class_metrics.parquet.
func ExportParquet(store contract.HistoryStore, outputPrefix string, w io.Writer) error {
	if outputPrefix == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run history is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total discovery runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total class records: %d\n", status.TableSizes[ClassMetricsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve discovery runs: %w", err)
	}
	classMetrics, err := store.GetAllClassMetrics()
	if err != nil {
		return fmt.Errorf("failed to retrieve class metrics: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputPrefix + ".discovery_runs.parquet"
	if err := parquet.WriteDiscoveryRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write discovery runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d discovery runs to: %s\n", len(parquetRuns), runsFile)

	parquetMetrics := parquet.ConvertClassMetricsRecords(classMetrics)
	metricsFile := outputPrefix + ".class_metrics.parquet"
	if err := parquet.WriteClassMetricsParquet(parquetMetrics, metricsFile); err != nil {
		return fmt.Errorf("failed to write class metrics: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d class records to: %s\n", len(parquetMetrics), metricsFile)

	return nil
}
