package outwriter

import (
	"fmt"
	htmltemplate "html/template"
	"io"

	"github.com/rncdiscover/rnc/schema"
)

var htmlTemplate = htmltemplate.Must(
	htmltemplate.New("report.html.tmpl").Funcs(templateFuncs).ParseFS(templatesFS, "templates/report.html.tmpl"),
)

// RenderHTML writes the hypertext report. Every value is escaped by html/template.
func RenderHTML(w io.Writer, res *schema.AnalysisResult) error {
	if err := htmlTemplate.Execute(w, newReportView(res)); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
