package outwriter

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/schema"
)

// topClassesLimit caps the class table of the terminal summary.
const topClassesLimit = 10

// Summary is the machine-readable form of a run, used for JSON and YAML output.
type Summary struct {
	ProjectName        string                        `json:"project_name" yaml:"project_name"`
	ProjectPath        string                        `json:"project_path" yaml:"project_path"`
	Timestamp          time.Time                     `json:"timestamp" yaml:"timestamp"`
	FilesScanned       int                           `json:"files_scanned" yaml:"files_scanned"`
	Entities           int                           `json:"entities" yaml:"entities"`
	BusinessComponents int                           `json:"business_components" yaml:"business_components"`
	ViewPages          int                           `json:"view_pages" yaml:"view_pages"`
	DatabaseHintsFound bool                          `json:"database_hints_found" yaml:"database_hints_found"`
	DatabaseHints      []schema.DatabaseHint         `json:"database_hints" yaml:"database_hints"`
	MetricsAvailable   bool                          `json:"metrics_available" yaml:"metrics_available"`
	Aggregate          *schema.AggregateMetrics      `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	Classes            []schema.ClassBusinessMetrics `json:"classes,omitempty" yaml:"classes,omitempty"`
	Artifacts          []Artifact                    `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
}

// NewSummary builds the machine-readable summary of a result.
func NewSummary(res *schema.AnalysisResult, artifacts []Artifact) Summary {
	s := Summary{
		ProjectName:        res.ProjectName,
		ProjectPath:        res.ProjectPath,
		Timestamp:          res.Timestamp,
		FilesScanned:       res.FilesScanned,
		Entities:           len(res.Entities),
		BusinessComponents: len(res.BusinessComponents),
		ViewPages:          len(res.ViewPages),
		DatabaseHintsFound: res.HasDatabaseHints(),
		DatabaseHints:      res.DatabaseHints,
		MetricsAvailable:   res.MetricsAvailable,
		Artifacts:          artifacts,
	}
	if res.MetricsAvailable {
		agg := res.Aggregate()
		s.Aggregate = &agg
		s.Classes = res.ClassMetrics
	}
	return s
}

// WriteSummary prints the run summary in the configured format.
func WriteSummary(w io.Writer, res *schema.AnalysisResult, cfg *contract.Config, artifacts []Artifact, duration time.Duration) error {
	switch cfg.Summary {
	case schema.JSONSummary:
		return writeJSON(w, NewSummary(res, artifacts))
	case schema.YAMLSummary:
		return writeYAML(w, NewSummary(res, artifacts))
	default:
		return writeSummaryTable(w, res, cfg, artifacts, duration)
	}
}

// writeSummaryTable generates and writes the human-readable summary.
func writeSummaryTable(w io.Writer, res *schema.AnalysisResult, cfg *contract.Config, artifacts []Artifact, duration time.Duration) error {
	title := "RNC Discovery Summary: " + res.ProjectName
	if cfg.UseEmojis {
		title = "🔎 " + title
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Count"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	data := [][]string{
		{"Files scanned", strconv.Itoa(res.FilesScanned)},
		{"Entity classes", strconv.Itoa(len(res.Entities))},
		{"Business components", strconv.Itoa(len(res.BusinessComponents))},
		{"JSF pages", strconv.Itoa(len(res.ViewPages))},
		{"Database configuration found", contract.YesNo(res.HasDatabaseHints(), cfg.UseColors)},
	}
	if res.MetricsAvailable {
		agg := res.Aggregate()
		data = append(data,
			[]string{"Classes with public methods", strconv.Itoa(agg.TotalClasses)},
			[]string{"Business-rule methods", strconv.Itoa(agg.TotalBusinessMethods)},
		)
	} else {
		data = append(data, []string{"Business-rule metrics", "unavailable"})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if res.MetricsAvailable && len(res.ClassMetrics) > 0 {
		if err := writeTopClassesTable(w, res.ClassMetrics, cfg); err != nil {
			return err
		}
	}

	for _, a := range artifacts {
		var err error
		switch {
		case a.Skipped:
			_, err = fmt.Fprintf(w, "Skipped %s report (%s)\n", a.Kind, a.Reason)
		case cfg.UseEmojis:
			_, err = fmt.Fprintf(w, "💾 Wrote %s report to %s\n", a.Kind, a.Path)
		default:
			_, err = fmt.Fprintf(w, "Wrote %s report to %s\n", a.Kind, a.Path)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Discovery completed in %v with %d workers. History backend: %s\n",
		duration.Round(time.Millisecond), cfg.Workers, cfg.HistoryBackend)
	return err
}

// writeTopClassesTable lists the classes with the most business-rule methods.
func writeTopClassesTable(w io.Writer, classes []schema.ClassBusinessMetrics, cfg *contract.Config) error {
	ranked := slices.Clone(classes)
	slices.SortStableFunc(ranked, func(a, b schema.ClassBusinessMetrics) int {
		return cmp.Compare(b.BusinessMethods, a.BusinessMethods)
	})
	if len(ranked) > topClassesLimit {
		ranked = ranked[:topClassesLimit]
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Class", "Role", "Public", "Business", "Path"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	pathWidth := getMaxTablePathWidth(cfg)
	var data [][]string
	for _, m := range ranked {
		role := string(m.Role)
		if cfg.UseColors {
			role = contract.GetColorRole(m.Role)
		}
		data = append(data, []string{
			m.ClassName,
			role,
			strconv.Itoa(m.PublicMethods),
			strconv.Itoa(m.BusinessMethods),
			contract.TruncatePath(m.RelPath, pathWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
