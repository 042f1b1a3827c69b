package outwriter

import (
	"embed"
	"fmt"
	"io"
	"strings"
	texttemplate "text/template"

	"github.com/rncdiscover/rnc/schema"
)

//go:embed templates
var templatesFS embed.FS

// DateTimeFormat is the timestamp layout shared by every report.
const DateTimeFormat = "2006-01-02 15:04:05"

var templateFuncs = map[string]any{
	"join": strings.Join,
}

var markdownTemplate = texttemplate.Must(
	texttemplate.New("report.md.tmpl").Funcs(templateFuncs).ParseFS(templatesFS, "templates/report.md.tmpl"),
)

// reportView is the data handed to the report templates.
type reportView struct {
	*schema.AnalysisResult
	Generated       string
	DatabaseSummary string
	Aggregate       schema.AggregateMetrics
}

func newReportView(res *schema.AnalysisResult) reportView {
	return reportView{
		AnalysisResult:  res,
		Generated:       res.Timestamp.Format(DateTimeFormat),
		DatabaseSummary: res.DatabaseHintSummary(),
		Aggregate:       res.Aggregate(),
	}
}

// RenderMarkdown writes the structured-document report.
// Two results that differ only in Timestamp render identically except the date line.
func RenderMarkdown(w io.Writer, res *schema.AnalysisResult) error {
	if err := markdownTemplate.Execute(w, newReportView(res)); err != nil {
		return fmt.Errorf("failed to render Markdown report: %w", err)
	}
	return nil
}
