package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rncdiscover/rnc/schema"
)

// Workbook sheet names.
const (
	SummarySheet      = "Summary"
	EntitiesSheet     = "Entity Classes"
	BusinessSheet     = "Business Components"
	ViewPagesSheet    = "JSF Pages"
	ClassMetricsSheet = "Class Metrics"
	LogSheet          = "Analysis Log"
)

// Workbook colors.
const (
	headerColor = "4472C4"
	titleColor  = "203864"
)

// workbookStyles are the style IDs registered on one workbook.
type workbookStyles struct {
	title, header, cell, count int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}

	var s workbookStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{titleColor}},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerColor}},
		Alignment: center,
		Border:    border,
	}); err != nil {
		return s, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Alignment: left, Border: border}); err != nil {
		return s, err
	}
	if s.count, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, Alignment: center}); err != nil {
		return s, err
	}
	return s, nil
}

// sheetWriter writes one sheet and keeps the first error.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles workbookStyles
	err    error
}

func (w *sheetWriter) set(cell string, value any, style int) {
	if w.err != nil {
		return
	}
	if w.err = w.f.SetCellValue(w.sheet, cell, value); w.err != nil {
		return
	}
	if style > 0 {
		w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
	}
}

// title writes the banner in A1, merged across cols columns.
func (w *sheetWriter) title(text string, cols int) {
	w.set("A1", text, w.styles.title)
	if w.err != nil || cols < 2 {
		return
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.MergeCell(w.sheet, "A1", last)
}

// row writes values starting at column A of the given row.
func (w *sheetWriter) row(row, style int, values ...any) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			w.err = err
			return
		}
		w.set(cell, v, style)
	}
}

func (w *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(w.sheet, col, col, width)
	}
}

// RenderWorkbook writes the spreadsheet report as XLSX.
func RenderWorkbook(out io.Writer, res *schema.AnalysisResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create workbook styles: %w", err)
	}
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	sheets := []struct {
		name  string
		write func(*sheetWriter, *schema.AnalysisResult)
	}{
		{SummarySheet, writeSummarySheet},
		{EntitiesSheet, writeEntitiesSheet},
		{BusinessSheet, writeBusinessSheet},
		{ViewPagesSheet, writeViewPagesSheet},
		{ClassMetricsSheet, writeClassMetricsSheet},
		{LogSheet, writeLogSheet},
	}
	for _, s := range sheets {
		if s.name == ClassMetricsSheet && !res.MetricsAvailable {
			continue
		}
		if s.name != SummarySheet {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
			}
		}
		w := &sheetWriter{f: f, sheet: s.name, styles: styles}
		s.write(w, res)
		if w.err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", s.name, w.err)
		}
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type countRow struct {
	label string
	value int
}

func writeSummarySheet(w *sheetWriter, res *schema.AnalysisResult) {
	w.title("RNC Project Discovery - Analysis Report", 2)
	w.row(3, 0, "Project Name:", res.ProjectName)
	w.row(4, 0, "Analysis Date:", res.Timestamp.Format(DateTimeFormat))
	w.row(5, 0, "Project Path:", res.ProjectPath)

	w.row(7, w.styles.header, "Metric", "Count")
	counts := []countRow{
		{"Entity Classes", len(res.Entities)},
		{"Business Components", len(res.BusinessComponents)},
		{"JSF Pages", len(res.ViewPages)},
		{"Database Configuration Files", len(res.DatabaseHints)},
	}
	if res.MetricsAvailable {
		agg := res.Aggregate()
		counts = append(counts,
			countRow{"Classes With Public Methods", agg.TotalClasses},
			countRow{"Business-Rule Methods", agg.TotalBusinessMethods},
		)
	}
	for i, c := range counts {
		row := 8 + i
		w.row(row, 0, c.label)
		cell, err := excelize.CoordinatesToCellName(2, row)
		if err != nil {
			w.err = err
			return
		}
		w.set(cell, c.value, w.styles.count)
	}
	w.widths(30, 30)
}

func writeClassificationRows(w *sheetWriter, items []schema.FileClassification, withTable bool) {
	headers := []any{"File Path", "Relative Path", "Patterns Found"}
	if withTable {
		headers = append(headers, "Class", "Table")
	}
	w.row(3, w.styles.header, headers...)
	for i, fc := range items {
		values := []any{fc.Path, fc.RelPath, strings.Join(fc.Patterns, ", ")}
		if withTable {
			values = append(values, fc.ClassName, fc.TableName)
		}
		w.row(4+i, w.styles.cell, values...)
	}
}

func writeEntitiesSheet(w *sheetWriter, res *schema.AnalysisResult) {
	w.title(EntitiesSheet, 5)
	writeClassificationRows(w, res.Entities, true)
	w.widths(50, 40, 35, 25, 25)
}

func writeBusinessSheet(w *sheetWriter, res *schema.AnalysisResult) {
	w.title(BusinessSheet, 3)
	writeClassificationRows(w, res.BusinessComponents, false)
	w.widths(50, 40, 35)
}

func writeViewPagesSheet(w *sheetWriter, res *schema.AnalysisResult) {
	w.title(ViewPagesSheet, 2)
	w.row(3, w.styles.header, "File Path", "Relative Path")
	for i, v := range res.ViewPages {
		w.row(4+i, w.styles.cell, v.Path, v.RelPath)
	}
	w.widths(50, 40)
}

func writeClassMetricsSheet(w *sheetWriter, res *schema.AnalysisResult) {
	w.title(ClassMetricsSheet, 6)
	w.row(3, w.styles.header, "Class", "Role", "Relative Path", "Public Methods", "Business-Rule Methods", "Methods")
	for i, m := range res.ClassMetrics {
		w.row(4+i, w.styles.cell, m.ClassName, string(m.Role), m.RelPath, m.PublicMethods, m.BusinessMethods,
			strings.Join(m.BusinessMethodNames, ", "))
	}
	w.widths(30, 15, 50, 16, 22, 50)
}

func writeLogSheet(w *sheetWriter, res *schema.AnalysisResult) {
	w.title(LogSheet, 1)
	w.set("A3", res.Log, w.styles.cell)
	w.widths(120)
}
