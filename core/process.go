package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rncdiscover/rnc/core/match"
	"github.com/rncdiscover/rnc/core/method"
	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/schema"
)

// fileWarning is a non-fatal problem found while processing one file.
// Warnings are logged after the parallel phase so that the log keeps traversal order.
type fileWarning struct {
	msg   string
	path  string
	err   error
	debug bool
}

// fileResult is everything one candidate contributes to the run.
type fileResult struct {
	classification *schema.FileClassification
	role           match.Role
	view           *schema.ViewPage
	hint           *schema.DatabaseHint
	metrics        []schema.ClassBusinessMetrics
	warnings       []fileWarning
}

// processor holds the read-only collaborators shared by all workers.
type processor struct {
	parser     contract.JavaParser // nil when class metrics are unavailable
	classifier method.Classifier
}

// process handles a single candidate. It never fails: every fault is turned into a warning.
func (p *processor) process(ctx context.Context, c candidate) fileResult {
	switch c.kind {
	case schema.ViewFile:
		return fileResult{view: &schema.ViewPage{Path: c.path, RelPath: c.rel}}
	case schema.ConfigFile:
		return p.processConfig(c)
	default:
		return p.processJava(ctx, c)
	}
}

func (p *processor) processJava(ctx context.Context, c candidate) fileResult {
	var res fileResult
	src, err := os.ReadFile(c.path)
	if err != nil {
		// Unreadable files are classified as empty
		res.warnings = append(res.warnings, fileWarning{msg: "Could not read file", path: c.rel, err: err})
		return res
	}
	content := string(src)

	role, patterns := match.ClassifySource(content)
	if role != match.NoRole {
		fc := &schema.FileClassification{Path: c.path, RelPath: c.rel, Patterns: patterns}
		if role == match.EntityRole {
			fc.ClassName, fc.TableName = match.EntityNames(content)
		}
		res.classification, res.role = fc, role
	}

	if p.parser == nil {
		return res
	}
	decls, err := p.parser.Parse(ctx, c.path, src)
	if err != nil {
		res.warnings = append(res.warnings, fileWarning{msg: "Skipping class metrics", path: c.rel, err: err, debug: true})
		return res
	}
	res.metrics = BuildClassMetrics(c.path, c.rel, decls, p.classifier)
	return res
}

func (p *processor) processConfig(c candidate) fileResult {
	var res fileResult
	src, err := os.ReadFile(c.path)
	if err != nil {
		res.warnings = append(res.warnings, fileWarning{msg: "Could not read file", path: c.rel, err: err})
		return res
	}

	categories, err := match.ScanDatabaseHints(c.path, string(src))
	if err != nil {
		res.warnings = append(res.warnings, fileWarning{msg: "Invalid YAML, scanned as plain text", path: c.rel, err: errors.Unwrap(err)})
	}
	if len(categories) > 0 {
		res.hint = &schema.DatabaseHint{
			Path:       c.path,
			RelPath:    c.rel,
			FileName:   filepath.Base(c.path),
			Categories: categories,
		}
	}
	return res
}
