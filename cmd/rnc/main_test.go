package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rncdiscover/rnc/internal/contract"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"success", nil, 0},
		{"missing project path", fmt.Errorf("%w\nUsage: rnc discover <project-path> [flags]", contract.ErrMissingProjectPath), 2},
		{"not a directory", fmt.Errorf("'/tmp/pom.xml': %w", contract.ErrNotDirectory), 3},
		{"report failure", errors.New("failed to create /ro/rnc-shop.md: permission denied"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCode(tt.err))
		})
	}
}
