// Package main provides a performance benchmarking tool for the rnc CLI.
// It measures discovery times across project trees, worker counts and classifier
// strategies, running each case multiple times, treating the first successful run
// as cold and averaging the rest as warm, and writes the results as CSV.
//
// Prerequisites:
// - rnc binary installed and available in PATH
// - Java projects checked out as subdirectories of the base directory
//
// Usage: go run benchmark/main.go [project-base-dir]
//
//	project-base-dir: Directory whose subdirectories are Java/JSF projects
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the timings of one project and case.
type BenchmarkResult struct {
	Project  string
	Case     string
	ColdTime string
	WarmTime string
}

// BenchmarkCase is one combination of discover flags.
type BenchmarkCase struct {
	Name       string
	Classifier string
	Workers    int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ProjectBase string
	Timeout     time.Duration
	Runs        int
	Projects    []string
	Cases       []BenchmarkCase
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [project-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	projectBase := os.Args[1]

	projects, err := listProjects(projectBase)
	if err != nil {
		fmt.Printf("Cannot list projects: %v\n", err)
		os.Exit(1)
	}

	config := BenchmarkConfig{
		ProjectBase: projectBase,
		Timeout:     5 * time.Minute,
		Runs:        4,
		Projects:    projects,
		Cases: []BenchmarkCase{
			{Name: "tree-1", Classifier: "tree", Workers: 1},
			{Name: "tree-8", Classifier: "tree", Workers: 8},
			{Name: "text-8", Classifier: "text", Workers: 8},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results, config)
}

// listProjects returns the subdirectory names of the base directory, in lexical order.
func listProjects(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	var projects []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			projects = append(projects, e.Name())
		}
	}
	return projects, nil
}

// checkPrerequisites verifies that the rnc binary and at least one project exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("rnc"); err != nil {
		return fmt.Errorf("rnc binary not found in PATH")
	}
	if len(config.Projects) == 0 {
		return fmt.Errorf("no projects found under %s", config.ProjectBase)
	}
	return nil
}

// runBenchmarks executes every case against every project
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d projects, %d cases, %v timeout, %d runs each\n",
		len(config.Projects), len(config.Cases), config.Timeout, config.Runs)

	for _, project := range config.Projects {
		fmt.Printf("Benchmarking %s\n", project)
		projectPath := filepath.Join(config.ProjectBase, project)
		for _, c := range config.Cases {
			results = append(results, runBenchmarkCase(config, project, projectPath, c))
		}
	}

	return results
}

// runBenchmarkCase times one case and formats its cold and warm timings
func runBenchmarkCase(config BenchmarkConfig, project, projectPath string, c BenchmarkCase) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", c.Name, config.Runs)

	outputDir, err := os.MkdirTemp("", "rnc-benchmark-*")
	if err != nil {
		fmt.Printf("  Warning: cannot create output dir: %v\n", err)
		return BenchmarkResult{Project: project, Case: c.Name, ColdTime: "ERROR", WarmTime: "ERROR"}
	}
	defer func() { _ = os.RemoveAll(outputDir) }()

	args := []string{
		"discover", projectPath,
		"--output-dir", outputDir,
		"--classifier", c.Classifier,
		"--workers", strconv.Itoa(c.Workers),
		"--history-backend", "none",
		"--log-level", "error",
	}
	cold, warm := runBenchmark(config, args)

	result := BenchmarkResult{Project: project, Case: c.Name, ColdTime: "TIMEOUT", WarmTime: "TIMEOUT"}
	if cold > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", cold)
	}
	if len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		result.WarmTime = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", result.ColdTime, result.WarmTime)
	return result
}

// runBenchmark executes rnc multiple times and returns the cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("rnc", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Discovery completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/rnc_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"project", "case", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Project, result.Case, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results, grouped by case
func printSummary(results []BenchmarkResult, config BenchmarkConfig) {
	fmt.Printf("Benchmark complete\n")
	for _, c := range config.Cases {
		fmt.Printf("%s:\n", c.Name)
		for _, result := range results {
			if result.Case == c.Name {
				fmt.Printf("  %-20s: Cold: %s, Warm: %s\n", result.Project, result.ColdTime, result.WarmTime)
			}
		}
	}
}
