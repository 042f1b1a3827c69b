package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/rncdiscover/rnc/schema"
)

// Color variables for console output.
var (
	ControllerColor = color.New(color.FgMagenta, color.Bold) // ControllerColor marks request-facing classes.
	ServiceColor    = color.New(color.FgCyan, color.Bold)    // ServiceColor marks service classes.
	RepositoryColor = color.New(color.FgYellow)              // RepositoryColor marks persistence gateways.
	FoundColor      = color.New(color.FgGreen, color.Bold)
	MissingColor    = color.New(color.FgRed)
)

// GetColorRole returns a colored role label for console output (table).
func GetColorRole(role schema.Role) string {
	text := string(role)
	switch role {
	case schema.ControllerRole:
		return ControllerColor.Sprint(text)
	case schema.ServiceRole:
		return ServiceColor.Sprint(text)
	case schema.RepositoryRole:
		return RepositoryColor.Sprint(text)
	default:
		return text
	}
}

// YesNo renders a boolean as "Yes" or "No", colored when requested.
func YesNo(b bool, useColors bool) string {
	switch {
	case b && useColors:
		return FoundColor.Sprint("Yes")
	case b:
		return "Yes"
	case useColors:
		return MissingColor.Sprint("No")
	default:
		return "No"
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated
// as prefixes. Patterns starting with '.' are treated as suffix (extension) matches.
// A user can provide patterns like "target/", "generated/", "*Test.java".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".rnc_history.db"
	}
	return filepath.Join(homeDir, ".rnc_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0/auto)", s)
	}
}

// ParseAutoBool is ParseBoolString plus "auto" (and empty), which resolves to
// whether f is a terminal.
func ParseAutoBool(s string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return IsTerminal(f), nil
	default:
		return ParseBoolString(s)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
