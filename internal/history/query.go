package history

import (
	"fmt"
	"time"

	"github.com/rncdiscover/rnc/schema"
)

// GetStatus returns status information about the history store.
func (s *Store) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if !s.enabled() {
		return status, nil
	}

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", RunsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row = s.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY start_time DESC LIMIT 1", RunsTable))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		var err error
		row = s.db.QueryRow(fmt.Sprintf("SELECT MAX(start_time) FROM %s", RunsTable))
		if status.LastRunTime, err = scanTime(row, s.backend); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		row = s.db.QueryRow(fmt.Sprintf("SELECT MIN(start_time) FROM %s", RunsTable))
		if status.OldestRunTime, err = scanTime(row, s.backend); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		row = s.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(classes), 0) FROM %s", RunsTable))
		if err := row.Scan(&status.TotalClassesSeen); err != nil {
			return status, fmt.Errorf("failed to get total classes: %w", err)
		}
	}

	for _, table := range []string{RunsTable, ClassMetricsTable} {
		var count int64
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all discovery runs, oldest first.
func (s *Store) GetAllRuns() ([]schema.RunRecord, error) {
	if !s.enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, project_name, project_path, start_time, end_time, run_duration_ms,
		COALESCE(files_scanned, 0), COALESCE(entities, 0), COALESCE(business_components, 0), COALESCE(view_pages, 0),
		COALESCE(database_hint_files, 0), COALESCE(classes, 0), COALESCE(total_business_methods, 0)
		FROM %s ORDER BY start_time, run_id`, RunsTable)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query discovery runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var r schema.RunRecord
		var start, end any
		if err := rows.Scan(&r.RunID, &r.ProjectName, &r.ProjectPath, &start, &end, &r.DurationMs,
			&r.FilesScanned, &r.Entities, &r.BusinessComponents, &r.ViewPages,
			&r.DatabaseHintFiles, &r.Classes, &r.TotalBusinessMethods); err != nil {
			return nil, fmt.Errorf("failed to scan discovery run: %w", err)
		}
		if r.StartTime, err = asTime(start); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if end != nil {
			endTime, err := asTime(end)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			r.EndTime = &endTime
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating discovery runs: %w", err)
	}
	return results, nil
}

// GetAllClassMetrics retrieves all class metrics rows in recording order.
func (s *Store) GetAllClassMetrics() ([]schema.ClassMetricsRecord, error) {
	if !s.enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, class_name, file_path, role, public_methods, business_methods,
		business_method_names FROM %s ORDER BY run_id, seq`, ClassMetricsTable)
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query class metrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ClassMetricsRecord
	for rows.Next() {
		var r schema.ClassMetricsRecord
		if err := rows.Scan(&r.RunID, &r.ClassName, &r.FilePath, &r.Role, &r.PublicMethods,
			&r.BusinessMethods, &r.BusinessMethodNames); err != nil {
			return nil, fmt.Errorf("failed to scan class metrics: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class metrics: %w", err)
	}
	return results, nil
}

// asTime converts a scanned time column: SQLite yields text, the others native times.
func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", v)
	}
}
