package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/schema"
)

func sampleResult(metrics bool) *schema.AnalysisResult {
	res := &schema.AnalysisResult{
		ProjectName: "shop",
		ProjectPath: "/srv/shop",
		Timestamp:   time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		Entities: []schema.FileClassification{
			{
				Path:      "/srv/shop/src/Order.java",
				RelPath:   "src/Order.java",
				Patterns:  []string{`@Entity\b`, `@Table\b`},
				ClassName: "Order",
				TableName: "orders",
			},
		},
		BusinessComponents: []schema.FileClassification{
			{Path: "/srv/shop/src/OrderService.java", RelPath: "src/OrderService.java", Patterns: []string{`@Service\b`}},
			{Path: "/srv/shop/src/CartController.java", RelPath: "src/CartController.java", Patterns: []string{`@Named\b`}},
		},
		ViewPages: []schema.ViewPage{
			{Path: "/srv/shop/web/index.xhtml", RelPath: "web/index.xhtml"},
		},
		DatabaseHints: []schema.DatabaseHint{},
		ClassMetrics:  []schema.ClassBusinessMetrics{},
		FilesScanned:  5,
		Log:           "INFO\tStarting discovery\n",
	}
	if metrics {
		res.MetricsAvailable = true
		res.ClassifierStrategy = schema.TreeStrategy
		res.ClassMetrics = []schema.ClassBusinessMetrics{
			{
				ClassName:           "OrderService",
				RelPath:             "src/OrderService.java",
				Role:                schema.ServiceRole,
				PublicMethods:       2,
				BusinessMethods:     1,
				BusinessMethodNames: []string{"computeTotals"},
			},
		}
	}
	return res
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, sampleResult(true)))
	md := buf.String()

	assert.True(t, strings.HasPrefix(md, "# Static Discovery Report: `shop`\n"))
	assert.Contains(t, md, "**Analysis Date:** 2026-03-01 10:30:00")
	assert.Contains(t, md, "* src/Order.java (Pattern: @Entity\\b, @Table\\b) -> table orders\n")
	assert.Contains(t, md, "* src/OrderService.java (Pattern: @Service\\b)\n")
	assert.Contains(t, md, "* web/index.xhtml\n")
	assert.Contains(t, md, schema.NoDatabaseHints)
	assert.Contains(t, md, "## 5. Business-Rule Metrics")
	assert.Contains(t, md, "| OrderService | Service | `src/OrderService.java` | 2 | 1 | computeTotals |")
	assert.Contains(t, md, "| Avg business-rule methods per service | 1.00 |")
	assert.Contains(t, md, "## 6. Execution Log\n\n```\nINFO\tStarting discovery\n```\n")
}

func TestRenderMarkdownWithoutMetrics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, sampleResult(false)))
	md := buf.String()

	assert.NotContains(t, md, "Business-Rule Metrics")
	assert.Contains(t, md, "## 5. Execution Log")
	assert.Contains(t, md, "**Total Classes Found:** **1**")
	assert.Contains(t, md, "**Total Classes Found:** **2**")
}

func TestRenderMarkdownDatabaseHints(t *testing.T) {
	res := sampleResult(false)
	res.DatabaseHints = []schema.DatabaseHint{
		{
			Path:       "/srv/shop/application.yml",
			FileName:   "application.yml",
			Categories: []schema.HintCategory{schema.JDBCURLHint, schema.DatasourceHint},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, res))
	assert.Contains(t, buf.String(), schema.DatabaseHintsHeading)
	assert.NotContains(t, buf.String(), schema.NoDatabaseHints)
}

func TestRenderMarkdownOnlyTimestampDiffers(t *testing.T) {
	a, b := sampleResult(true), sampleResult(true)
	b.Timestamp = a.Timestamp.Add(48 * time.Hour)

	var bufA, bufB bytes.Buffer
	require.NoError(t, RenderMarkdown(&bufA, a))
	require.NoError(t, RenderMarkdown(&bufB, b))

	linesA := strings.Split(bufA.String(), "\n")
	linesB := strings.Split(bufB.String(), "\n")
	require.Equal(t, len(linesA), len(linesB))
	var diffs []string
	for i := range linesA {
		if linesA[i] != linesB[i] {
			diffs = append(diffs, linesA[i])
		}
	}
	require.Len(t, diffs, 1)
	assert.True(t, strings.HasPrefix(diffs[0], "**Analysis Date:**"))
}

func TestRenderHTMLEscapes(t *testing.T) {
	res := sampleResult(true)
	res.Log = "WARN\t<script>alert(1)</script>\n"
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, res))
	html := buf.String()

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Business-Rule Metrics")
	assert.Contains(t, html, "computeTotals")
}

func TestRenderHTMLWithoutMetrics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, sampleResult(false)))
	assert.NotContains(t, buf.String(), "Business-Rule Metrics")
	assert.Contains(t, buf.String(), "JSF Pages")
}

func TestRenderWorkbookSheets(t *testing.T) {
	tests := []struct {
		name    string
		metrics bool
		want    []string
	}{
		{
			name:    "with metrics",
			metrics: true,
			want:    []string{SummarySheet, EntitiesSheet, BusinessSheet, ViewPagesSheet, ClassMetricsSheet, LogSheet},
		},
		{
			name:    "without metrics",
			metrics: false,
			want:    []string{SummarySheet, EntitiesSheet, BusinessSheet, ViewPagesSheet, LogSheet},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderWorkbook(&buf, sampleResult(tt.metrics)))

			f, err := excelize.OpenReader(&buf)
			require.NoError(t, err)
			defer func() { _ = f.Close() }()
			assert.Equal(t, tt.want, f.GetSheetList())

			rel, err := f.GetCellValue(EntitiesSheet, "B4")
			require.NoError(t, err)
			assert.Equal(t, "src/Order.java", rel)
		})
	}
}

// Count extraction per artifact, used to check that all reports agree.
var (
	mdTotals   = regexp.MustCompile(`\*\*Total (?:Classes|Pages) Found:\*\* \*\*(\d+)\*\*`)
	htmlCounts = regexp.MustCompile(`id="(entity|business|view)-count">(\d+)<`)
)

func TestCrossReportCounts(t *testing.T) {
	res := sampleResult(true)
	want := []int{len(res.Entities), len(res.BusinessComponents), len(res.ViewPages)}

	var md bytes.Buffer
	require.NoError(t, RenderMarkdown(&md, res))
	var mdGot []int
	for _, m := range mdTotals.FindAllStringSubmatch(md.String(), -1) {
		n, _ := strconv.Atoi(m[1])
		mdGot = append(mdGot, n)
	}
	assert.Equal(t, want, mdGot, "markdown")

	var html bytes.Buffer
	require.NoError(t, RenderHTML(&html, res))
	var htmlGot []int
	for _, m := range htmlCounts.FindAllStringSubmatch(html.String(), -1) {
		n, _ := strconv.Atoi(m[2])
		htmlGot = append(htmlGot, n)
	}
	assert.Equal(t, want, htmlGot, "html")

	var xlsx bytes.Buffer
	require.NoError(t, RenderWorkbook(&xlsx, res))
	f, err := excelize.OpenReader(&xlsx)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	var xlsxGot []int
	for _, cell := range []string{"B8", "B9", "B10"} {
		v, err := f.GetCellValue(SummarySheet, cell)
		require.NoError(t, err)
		n, err := strconv.Atoi(v)
		require.NoError(t, err)
		xlsxGot = append(xlsxGot, n)
	}
	assert.Equal(t, want, xlsxGot, "xlsx")
}

func testConfig(t *testing.T) *contract.Config {
	dir := t.TempDir()
	return &contract.Config{
		ProjectPath:    dir,
		ProjectName:    "shop",
		OutputDir:      dir,
		Workers:        2,
		WriteXLSX:      true,
		WriteHTML:      true,
		Summary:        schema.TextSummary,
		Width:          120,
		HistoryBackend: schema.NoneBackend,
	}
}

func TestWriteReports(t *testing.T) {
	t.Run("all artifacts", func(t *testing.T) {
		cfg := testConfig(t)
		artifacts, err := WriteReports(cfg, sampleResult(true), zap.NewNop())
		require.NoError(t, err)
		require.Len(t, artifacts, 3)
		for _, a := range artifacts {
			assert.False(t, a.Skipped, a.Kind)
			info, err := os.Stat(a.Path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		}
		assert.Equal(t, filepath.Join(cfg.OutputDir, "rnc-shop.md"), artifacts[0].Path)
	})

	t.Run("optional artifacts disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.WriteXLSX, cfg.WriteHTML = false, false
		artifacts, err := WriteReports(cfg, sampleResult(false), zap.NewNop())
		require.NoError(t, err)
		assert.True(t, artifacts[1].Skipped)
		assert.True(t, artifacts[2].Skipped)
		_, err = os.Stat(cfg.ReportPath(".xlsx"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("markdown failure is fatal", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.OutputDir = filepath.Join(cfg.OutputDir, "missing")
		_, err := WriteReports(cfg, sampleResult(false), zap.NewNop())
		assert.Error(t, err)
	})
}

func TestWriteSummary(t *testing.T) {
	artifacts := []Artifact{
		{Kind: MarkdownArtifact, Path: "/srv/shop/output/rnc-shop.md"},
		{Kind: WorkbookArtifact, Path: "/srv/shop/output/rnc-shop.xlsx", Skipped: true, Reason: "disabled"},
	}

	t.Run("text", func(t *testing.T) {
		cfg := testConfig(t)
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, sampleResult(true), cfg, artifacts, time.Second))
		out := buf.String()
		assert.Contains(t, out, "RNC Discovery Summary: shop")
		assert.Contains(t, out, "Entity classes")
		assert.Contains(t, out, "OrderService")
		assert.Contains(t, out, "Wrote markdown report to /srv/shop/output/rnc-shop.md")
		assert.Contains(t, out, "Skipped xlsx report (disabled)")
	})

	t.Run("text without metrics", func(t *testing.T) {
		cfg := testConfig(t)
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, sampleResult(false), cfg, nil, time.Second))
		assert.Contains(t, buf.String(), "unavailable")
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Summary = schema.JSONSummary
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, sampleResult(true), cfg, artifacts, time.Second))

		var got Summary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 1, got.Entities)
		assert.Equal(t, 2, got.BusinessComponents)
		assert.False(t, got.DatabaseHintsFound)
		require.NotNil(t, got.Aggregate)
		assert.Equal(t, 1, got.Aggregate.TotalBusinessMethods)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Summary = schema.YAMLSummary
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, sampleResult(false), cfg, nil, time.Second))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "shop", got["project_name"])
		assert.Equal(t, 1, got["view_pages"])
		assert.NotContains(t, got, "aggregate")
	})
}

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{width: 40, want: 15},
		{width: 120, want: 42},
		{width: 400, want: 70},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.width), func(t *testing.T) {
			assert.Equal(t, tt.want, getMaxTablePathWidth(&contract.Config{Width: tt.width}))
		})
	}
}
