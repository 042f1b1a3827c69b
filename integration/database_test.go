//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setHistoryEnv points every rnc invocation at one history backend.
func setHistoryEnv(t *testing.T, backend, connStr string) {
	t.Setenv("RNC_HISTORY_BACKEND", backend)
	t.Setenv("RNC_HISTORY_DB_CONNECT", connStr)
}

// exerciseHistory runs the full history lifecycle against the configured backend.
func exerciseHistory(t *testing.T) {
	root := writeFixture(t)

	_, err := runRnc(t, "history", "clear")
	require.NoError(t, err)

	_, err = runRnc(t, "history", "migrate")
	require.NoError(t, err)

	_, err = runRnc(t, "discover", root, "--xlsx=false", "--html=false")
	require.NoError(t, err)

	out, err := runRnc(t, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 1")

	prefix := filepath.Join(t.TempDir(), "rnc-history")
	_, err = runRnc(t, "history", "export", "--output-file", prefix)
	require.NoError(t, err)
	for _, suffix := range []string{".discovery_runs.parquet", ".class_metrics.parquet"} {
		_, err := os.Stat(prefix + suffix)
		assert.NoError(t, err, suffix)
	}
}

// TestRncWithMySQL tests the rnc CLI with a MySQL backend.
func TestRncWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "rnc",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	// golang-migrate needs multiStatements for the migration files.
	setHistoryEnv(t, "mysql", fmt.Sprintf("root:secret123@tcp(%s:%s)/rnc?parseTime=true&multiStatements=true", host, port.Port()))
	exerciseHistory(t)
}

// TestRncWithPostgres tests the rnc CLI with a PostgreSQL backend.
func TestRncWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	setHistoryEnv(t, "postgresql", fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port()))
	exerciseHistory(t)
}

// TestRncWithSQLite runs the same lifecycle against a temporary SQLite file.
func TestRncWithSQLite(t *testing.T) {
	setHistoryEnv(t, "sqlite", filepath.Join(t.TempDir(), "history.db"))
	exerciseHistory(t)
}
