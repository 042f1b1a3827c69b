// Package main is the entry point of the rnc CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rncdiscover/rnc/cmd"
	"github.com/rncdiscover/rnc/internal/contract"
)

// Process exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitMissingPath  = 2
	exitNotDirectory = 3
)

func main() {
	err := cmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, contract.ErrMissingProjectPath):
		return exitMissingPath
	case errors.Is(err, contract.ErrNotDirectory):
		return exitNotDirectory
	default:
		return exitFailure
	}
}
