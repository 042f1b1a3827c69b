// Package history records discovery runs and their class metrics in a SQL database.
package history

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/schema"
)

// Table names for run history.
const (
	RunsTable         = "rnc_discovery_runs"
	ClassMetricsTable = "rnc_class_metrics"
)

// sqliteTimeFormat is fixed-width so stored times sort lexically.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

//go:embed migrations
var migrationsFS embed.FS

// Store implements contract.HistoryStore.
type Store struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string

	mu  sync.Mutex
	seq map[string]int // next class metrics ordinal per run
}

var _ contract.HistoryStore = &Store{} // Compile-time check

// driverFor returns the database/sql driver name of a backend.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// openDB opens and pings the database of a backend.
// An empty SQLite connection string selects the default file in the home directory.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, "", err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Include parseTime=true."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct."
		default:
			connDetail = "Check that the directory is writable."
		}
		return nil, "", fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, driverName, nil
}

// NewStore creates a Store for the backend. NoneBackend yields a no-op store.
func NewStore(backend schema.DatabaseBackend, connStr string) (*Store, error) {
	if backend == schema.NoneBackend || backend == "" {
		return &Store{backend: schema.NoneBackend}, nil
	}

	db, driverName, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &Store{
		db:         db,
		backend:    backend,
		driverName: driverName,
		seq:        make(map[string]int),
	}, nil
}

// migrationDir returns the embedded migrations directory of a backend.
func migrationDir(backend schema.DatabaseBackend) (fs.FS, error) {
	return fs.Sub(migrationsFS, "migrations/"+string(backend))
}

// ensureSchema applies the statements of every embedded up migration.
// They are idempotent, so a later `history migrate` still succeeds.
func ensureSchema(db *sql.DB, backend schema.DatabaseBackend) error {
	dir, err := migrationDir(backend)
	if err != nil {
		return err
	}
	ups, err := fs.Glob(dir, "*.up.sql")
	if err != nil {
		return err
	}
	for _, name := range ups {
		content, err := fs.ReadFile(dir, name)
		if err != nil {
			return err
		}
		for stmt := range strings.SplitSeq(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

// enabled reports whether the store writes anywhere.
func (s *Store) enabled() bool {
	return s.backend != schema.NoneBackend && s.db != nil
}

// rebind rewrites ? placeholders to $N for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BeginRun creates a new run row and returns its unique ID.
func (s *Store) BeginRun(projectName, projectPath string, startTime time.Time) (string, error) {
	if !s.enabled() {
		return "", nil
	}
	runID := uuid.NewString()
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s (run_id, project_name, project_path, start_time) VALUES (?, ?, ?, ?)`, RunsTable))
	if _, err := s.db.Exec(query, runID, projectName, projectPath, formatTime(startTime, s.backend)); err != nil {
		return "", fmt.Errorf("failed to insert discovery run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (s *Store) EndRun(runID string, endTime time.Time, counts schema.RunCounts) error {
	if !s.enabled() {
		return nil
	}

	row := s.db.QueryRow(s.rebind(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, RunsTable)), runID)
	startTime, err := scanTime(row, s.backend)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %s: %w", runID, err)
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	query := s.rebind(fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, files_scanned = ?, entities = ?,
		business_components = ?, view_pages = ?, database_hint_files = ?, classes = ?, total_business_methods = ?
		WHERE run_id = ?`, RunsTable))
	_, err = s.db.Exec(query, formatTime(endTime, s.backend), durationMs, counts.FilesScanned, counts.Entities,
		counts.BusinessComponents, counts.ViewPages, counts.DatabaseHintFiles, counts.Classes, counts.TotalBusinessMethods,
		runID)
	if err != nil {
		return fmt.Errorf("failed to update discovery run: %w", err)
	}

	s.mu.Lock()
	delete(s.seq, runID)
	s.mu.Unlock()
	return nil
}

// RecordClassMetrics stores one class metrics record for a run.
func (s *Store) RecordClassMetrics(runID string, m schema.ClassBusinessMetrics) error {
	if !s.enabled() {
		return nil
	}

	s.mu.Lock()
	seq := s.seq[runID]
	s.seq[runID] = seq + 1
	s.mu.Unlock()

	query := s.rebind(fmt.Sprintf(`INSERT INTO %s (run_id, seq, class_name, file_path, role, public_methods,
		business_methods, business_method_names) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, ClassMetricsTable))
	_, err := s.db.Exec(query, runID, seq, m.ClassName, m.RelPath, string(m.Role), m.PublicMethods,
		m.BusinessMethods, strings.Join(m.BusinessMethodNames, ","))
	if err != nil {
		return fmt.Errorf("failed to insert class metrics for %s: %w", m.ClassName, err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(sqliteTimeFormat)
	default:
		return t.UTC()
	}
}

// scanTime reads a single time column stored by formatTime.
func scanTime(row *sql.Row, backend schema.DatabaseBackend) (time.Time, error) {
	if backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}
