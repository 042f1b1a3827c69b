// Package core has the discovery driver: a single traversal, parallel file
// processing and the hand-off to the report writers and run history.
package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rncdiscover/rnc/core/match"
	"github.com/rncdiscover/rnc/core/method"
	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/internal/outwriter"
	"github.com/rncdiscover/rnc/internal/runlog"
	"github.com/rncdiscover/rnc/schema"
)

// Deps are the collaborators of a discovery run. Zero values are valid.
type Deps struct {
	Parser  contract.JavaParser   // nil disables class metrics
	History contract.HistoryStore // nil disables run history
	Log     *runlog.Log           // nil logs nothing
	Stdout  io.Writer             // nil means os.Stdout
}

func (d Deps) log() *runlog.Log {
	if d.Log == nil {
		return runlog.Nop()
	}
	return d.Log
}

func (d Deps) stdout() io.Writer {
	if d.Stdout == nil {
		return os.Stdout
	}
	return d.Stdout
}

// Discover runs the traversal and builds the AnalysisResult without writing anything.
func Discover(ctx context.Context, cfg *contract.Config, deps Deps) (*schema.AnalysisResult, error) {
	log := deps.log()
	logger := log.Logger()

	res := &schema.AnalysisResult{
		ProjectName:        cfg.ProjectName,
		ProjectPath:        cfg.ProjectPath,
		Timestamp:          time.Now(),
		Entities:           []schema.FileClassification{},
		BusinessComponents: []schema.FileClassification{},
		ViewPages:          []schema.ViewPage{},
		DatabaseHints:      []schema.DatabaseHint{},
		ClassMetrics:       []schema.ClassBusinessMetrics{},
		MetricsAvailable:   deps.Parser != nil,
	}
	logger.Info("Starting discovery", zap.String("project", cfg.ProjectName), zap.String("path", cfg.ProjectPath))

	p := &processor{parser: deps.Parser}
	if deps.Parser != nil {
		classifier, err := method.New(cfg.Classifier, cfg.Thresholds)
		if err != nil {
			return nil, err
		}
		p.classifier = classifier
		res.ClassifierStrategy = classifier.Name()
	} else {
		logger.Warn("Java parser unavailable, business-rule metrics are disabled")
	}

	files, err := collectCandidates(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", cfg.ProjectPath, err)
	}
	res.FilesScanned = len(files)
	logger.Info("Traversal complete", zap.Int("files", len(files)))

	results, err := processAll(ctx, p, files, cfg.Workers)
	if err != nil {
		return nil, err
	}

	for _, r := range results {
		for _, w := range r.warnings {
			if w.debug {
				logger.Debug(w.msg, zap.String("path", w.path), zap.Error(w.err))
			} else {
				logger.Warn(w.msg, zap.String("path", w.path), zap.Error(w.err))
			}
		}
		if r.classification != nil {
			if r.role == match.EntityRole {
				res.Entities = append(res.Entities, *r.classification)
			} else {
				res.BusinessComponents = append(res.BusinessComponents, *r.classification)
			}
		}
		if r.view != nil {
			res.ViewPages = append(res.ViewPages, *r.view)
		}
		if r.hint != nil {
			res.DatabaseHints = append(res.DatabaseHints, *r.hint)
		}
		res.ClassMetrics = append(res.ClassMetrics, r.metrics...)
	}

	logger.Info("Entity classes found", zap.Int("count", len(res.Entities)))
	logger.Info("Business components found", zap.Int("count", len(res.BusinessComponents)))
	logger.Info("JSF pages found", zap.Int("count", len(res.ViewPages)))
	logger.Info("Database configuration files found", zap.Int("count", len(res.DatabaseHints)))
	if res.MetricsAvailable {
		agg := res.Aggregate()
		logger.Info("Business-rule metrics computed",
			zap.Int("classes", agg.TotalClasses),
			zap.Int("business_methods", agg.TotalBusinessMethods),
			zap.String("classifier", string(res.ClassifierStrategy)))
	}

	res.Log = log.String()
	return res, nil
}

// processAll processes files with at most workers goroutines.
// Each result is stored at its traversal index so output order never depends on completion order.
func processAll(ctx context.Context, p *processor, files []candidate, workers int) ([]fileResult, error) {
	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, c := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.process(gctx, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ExecuteDiscover runs a discovery, writes the report artifacts into the
// output directory, records the run history and prints the summary.
// It serves as the main entry point for the 'discover' command.
func ExecuteDiscover(ctx context.Context, cfg *contract.Config, deps Deps) error {
	start := time.Now()
	res, err := Discover(ctx, cfg, deps)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	artifacts, err := outwriter.WriteReports(cfg, res, deps.log().Logger())
	if err != nil {
		return err
	}

	// A run is only recorded once its reports exist
	endRun(deps.History, beginRun(cfg, deps.History, start), res)
	return outwriter.WriteSummary(deps.stdout(), res, cfg, artifacts, time.Since(start))
}

// beginRun opens a history row. Tracking failures never abort the run.
func beginRun(cfg *contract.Config, store contract.HistoryStore, start time.Time) string {
	if store == nil {
		return ""
	}
	runID, err := store.BeginRun(cfg.ProjectName, cfg.ProjectPath, start)
	if err != nil {
		contract.LogWarn("Run history initialization failed", err)
		return ""
	}
	return runID
}

// endRun records the class metrics and totals of a finished run.
func endRun(store contract.HistoryStore, runID string, res *schema.AnalysisResult) {
	if store == nil || runID == "" {
		return
	}
	for _, m := range res.ClassMetrics {
		if err := store.RecordClassMetrics(runID, m); err != nil {
			contract.LogWarn(fmt.Sprintf("Run history failed for %s", m.ClassName), err)
		}
	}
	if err := store.EndRun(runID, time.Now(), schema.CountsOf(res)); err != nil {
		contract.LogWarn("Run history finalization failed", err)
	}
}
