// Package schema has configs, models and global variables for all parts of rnc.
package schema

import (
	"fmt"
	"strings"
	"time"
)

// FileClassification is a source file plus the fixed patterns that matched its content.
type FileClassification struct {
	// Path is absolute; RelPath is relative to the project root.
	Path    string `json:"path" yaml:"path"`
	RelPath string `json:"rel_path" yaml:"rel_path"`

	// Patterns are the matched pattern sources, in list order.
	Patterns []string `json:"patterns" yaml:"patterns"`

	// Entities only.
	ClassName string `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	TableName string `json:"table_name,omitempty" yaml:"table_name,omitempty"`
}

// ViewPage is a view template found in the project tree.
type ViewPage struct {
	Path    string `json:"path" yaml:"path"`
	RelPath string `json:"rel_path" yaml:"rel_path"`
}

// DatabaseHint is a configuration-like file with at least one database signal.
type DatabaseHint struct {
	Path       string         `json:"path" yaml:"path"`
	RelPath    string         `json:"rel_path" yaml:"rel_path"`
	FileName   string         `json:"file_name" yaml:"file_name"`
	Categories []HintCategory `json:"categories" yaml:"categories"`
}

// ClassBusinessMetrics holds the business-rule density of one declared type.
type ClassBusinessMetrics struct {
	ClassName           string   `json:"class_name" yaml:"class_name"`
	FilePath            string   `json:"file_path" yaml:"file_path"`
	RelPath             string   `json:"rel_path" yaml:"rel_path"`
	Role                Role     `json:"role" yaml:"role"`
	PublicMethods       int      `json:"public_methods" yaml:"public_methods"`
	BusinessMethods     int      `json:"business_methods" yaml:"business_methods"`
	BusinessMethodNames []string `json:"business_method_names" yaml:"business_method_names"`
}

// AggregateMetrics is derived from the full set of ClassBusinessMetrics.
type AggregateMetrics struct {
	TotalClasses                 int     `json:"total_classes" yaml:"total_classes"`
	ControllerClasses            int     `json:"controller_classes" yaml:"controller_classes"`
	ServiceClasses               int     `json:"service_classes" yaml:"service_classes"`
	AvgControllerBusinessMethods float64 `json:"avg_controller_business_methods" yaml:"avg_controller_business_methods"`
	AvgServiceBusinessMethods    float64 `json:"avg_service_business_methods" yaml:"avg_service_business_methods"`
	TotalBusinessMethods         int     `json:"total_business_methods" yaml:"total_business_methods"`
}

// AnalysisResult is everything one discovery run produced.
// It is built once by the driver and only read by the report assemblers.
type AnalysisResult struct {
	ProjectName        string                 `json:"project_name" yaml:"project_name"`
	ProjectPath        string                 `json:"project_path" yaml:"project_path"`
	Timestamp          time.Time              `json:"timestamp" yaml:"timestamp"`
	Entities           []FileClassification   `json:"entities" yaml:"entities"`
	BusinessComponents []FileClassification   `json:"business_components" yaml:"business_components"`
	ViewPages          []ViewPage             `json:"view_pages" yaml:"view_pages"`
	DatabaseHints      []DatabaseHint         `json:"database_hints" yaml:"database_hints"`
	ClassMetrics       []ClassBusinessMetrics `json:"class_metrics" yaml:"class_metrics"`
	MetricsAvailable   bool                   `json:"metrics_available" yaml:"metrics_available"`
	ClassifierStrategy ClassifierStrategy     `json:"classifier_strategy,omitempty" yaml:"classifier_strategy,omitempty"`
	FilesScanned       int                    `json:"files_scanned" yaml:"files_scanned"`
	Log                string                 `json:"-" yaml:"-"`
}

// Aggregate recomputes the project-wide metrics view.
func (r *AnalysisResult) Aggregate() AggregateMetrics {
	return ComputeAggregate(r.ClassMetrics)
}

// DatabaseHintSummary renders the hints as report text.
func (r *AnalysisResult) DatabaseHintSummary() string {
	return DatabaseHintSummary(r.DatabaseHints)
}

// HasDatabaseHints reports whether the configuration pass found anything.
func (r *AnalysisResult) HasDatabaseHints() bool {
	return r.DatabaseHintSummary() != NoDatabaseHints
}

// ComputeAggregate derives the AggregateMetrics view. Empty subsets average to 0.
func ComputeAggregate(classes []ClassBusinessMetrics) AggregateMetrics {
	var agg AggregateMetrics
	controllerSum, serviceSum := 0, 0
	for _, c := range classes {
		agg.TotalClasses++
		agg.TotalBusinessMethods += c.BusinessMethods
		switch c.Role {
		case ControllerRole:
			agg.ControllerClasses++
			controllerSum += c.BusinessMethods
		case ServiceRole:
			agg.ServiceClasses++
			serviceSum += c.BusinessMethods
		}
	}
	if agg.ControllerClasses > 0 {
		agg.AvgControllerBusinessMethods = float64(controllerSum) / float64(agg.ControllerClasses)
	}
	if agg.ServiceClasses > 0 {
		agg.AvgServiceBusinessMethods = float64(serviceSum) / float64(agg.ServiceClasses)
	}
	return agg
}

// DatabaseHintSummary concatenates one line per hinted file, or returns NoDatabaseHints.
func DatabaseHintSummary(hints []DatabaseHint) string {
	var lines []string
	for _, h := range hints {
		if len(h.Categories) == 0 {
			continue
		}
		labels := make([]string, len(h.Categories))
		for i, c := range h.Categories {
			labels[i] = c.Label()
		}
		lines = append(lines, fmt.Sprintf("- **%s** (%s) at `%s`", h.FileName, strings.Join(labels, ", "), h.Path))
	}
	if len(lines) == 0 {
		return NoDatabaseHints
	}
	return DatabaseHintsHeading + "\n" + strings.Join(lines, "\n")
}

// Label returns the human-readable name of a hint category.
func (c HintCategory) Label() string {
	switch c {
	case JDBCURLHint:
		return "Possible JDBC URL"
	case ORMDialectHint:
		return "Hibernate/JPA dialect"
	case DatasourceHint:
		return "Spring datasource configuration"
	default:
		return string(c)
	}
}

// RoleForClassName derives the coarse role label by substring match.
func RoleForClassName(name string) Role {
	for _, role := range RolePrecedence {
		if strings.Contains(name, string(role)) {
			return role
		}
	}
	return GenericRole
}
