// Package outwriter has the report renderers and the terminal summary.
// Renderers are pure functions of a schema.AnalysisResult.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/schema"
)

// Artifact kinds.
const (
	MarkdownArtifact = "markdown"
	WorkbookArtifact = "xlsx"
	HTMLArtifact     = "html"
)

// Artifact describes one report file of a run.
type Artifact struct {
	Kind    string `json:"kind" yaml:"kind"`
	Path    string `json:"path" yaml:"path"`
	Skipped bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// renderFunc renders one report into w.
type renderFunc func(w io.Writer, res *schema.AnalysisResult) error

// WriteReports writes the Markdown report and, when enabled, the workbook and HTML report.
// Only a Markdown failure is returned; the optional artifacts degrade to "skipped" with a warning.
func WriteReports(cfg *contract.Config, res *schema.AnalysisResult, logger *zap.Logger) ([]Artifact, error) {
	mdPath := cfg.ReportPath(".md")
	if err := writeReportFile(mdPath, res, RenderMarkdown); err != nil {
		return nil, err
	}
	artifacts := []Artifact{{Kind: MarkdownArtifact, Path: mdPath}}

	optional := []struct {
		kind    string
		ext     string
		enabled bool
		render  renderFunc
	}{
		{WorkbookArtifact, ".xlsx", cfg.WriteXLSX, RenderWorkbook},
		{HTMLArtifact, ".html", cfg.WriteHTML, RenderHTML},
	}
	for _, o := range optional {
		a := Artifact{Kind: o.kind, Path: cfg.ReportPath(o.ext)}
		switch {
		case !o.enabled:
			a.Skipped, a.Reason = true, "disabled"
		default:
			if err := writeReportFile(a.Path, res, o.render); err != nil {
				logger.Warn("Report skipped", zap.String("kind", o.kind), zap.Error(err))
				a.Skipped, a.Reason = true, err.Error()
			}
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// writeReportFile renders into a new file. A failed render leaves no partial file behind.
func writeReportFile(path string, res *schema.AnalysisResult, render renderFunc) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(file, res); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
