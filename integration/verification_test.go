//go:build basic

// Package integration contains integration tests for rnc.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiscoverVerification runs rnc discover on a fixture and checks the JSON summary and artifacts.
func TestDiscoverVerification(t *testing.T) {
	root := writeFixture(t)

	out, err := runRnc(t, "discover", root, "--exclude", "target/", "--summary", "json", "--log-level", "error", "--color", "no", "--emoji", "no")
	require.NoError(t, err)

	var summary struct {
		Entities           int  `json:"entities"`
		BusinessComponents int  `json:"business_components"`
		ViewPages          int  `json:"view_pages"`
		DatabaseHintsFound bool `json:"database_hints_found"`
		Artifacts          []struct {
			Kind    string `json:"kind"`
			Path    string `json:"path"`
			Skipped bool   `json:"skipped"`
		} `json:"artifacts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out[strings.Index(out, "{"):]), &summary))
	assert.Equal(t, 1, summary.Entities)
	assert.Equal(t, 2, summary.BusinessComponents)
	assert.Equal(t, 1, summary.ViewPages)
	assert.True(t, summary.DatabaseHintsFound)
	require.Len(t, summary.Artifacts, 3)

	md, err := os.ReadFile(filepath.Join(root, "output", "rnc-shop.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "**Total Classes Found:** **1**")
	assert.Contains(t, string(md), "-> table orders")
	assert.NotContains(t, string(md), "Stale.java")
	for _, ext := range []string{".xlsx", ".html"} {
		_, err := os.Stat(filepath.Join(root, "output", "rnc-shop"+ext))
		assert.NoError(t, err, ext)
	}
}

// TestDiscoverExitCodes checks the exit codes of the two fatal input faults.
func TestDiscoverExitCodes(t *testing.T) {
	file := filepath.Join(t.TempDir(), "pom.xml")
	require.NoError(t, os.WriteFile(file, []byte("<project/>"), 0o644))

	tests := []struct {
		name     string
		args     []string
		expected int
		contains string
	}{
		{"missing path", []string{"discover"}, 2, "Usage:"},
		{"file path", []string{"discover", file}, 3, "not a valid directory"},
		{"bad classifier", []string{"discover", filepath.Dir(file), "--classifier", "ast"}, 1, "invalid classifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runRnc(t, tt.args...)
			var exitErr *exec.ExitError
			require.True(t, errors.As(err, &exitErr), "expected a non-zero exit")
			assert.Equal(t, tt.expected, exitErr.ExitCode())
			assert.Contains(t, out, tt.contains)
		})
	}
}
