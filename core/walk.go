package core

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/rncdiscover/rnc/core/match"
	"github.com/rncdiscover/rnc/internal/contract"
	"github.com/rncdiscover/rnc/schema"
)

// vcsDirs are never descended into.
var vcsDirs = map[string]struct{}{
	".git": {},
	".svn": {},
	".hg":  {},
}

// candidate is one file the traversal hands to the processing phase.
type candidate struct {
	path string
	rel  string // slash-separated, relative to the project root
	kind schema.FileKind
}

// kindOf returns the file kind for a name, or false when the file takes no part in discovery.
func kindOf(name string) (schema.FileKind, bool) {
	switch {
	case match.IsJavaSource(name):
		return schema.JavaFile, true
	case match.IsViewPage(name):
		return schema.ViewFile, true
	case match.IsConfigFile(name):
		return schema.ConfigFile, true
	}
	return "", false
}

// collectCandidates walks the project once, in lexical order, and returns
// every Java source, view page and configuration file that is not excluded.
func collectCandidates(ctx context.Context, cfg *contract.Config) ([]candidate, error) {
	var files []candidate
	err := filepath.WalkDir(cfg.ProjectPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped; the root itself must be readable.
			if path == cfg.ProjectPath {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if path == cfg.ProjectPath {
			return nil
		}
		rel, relErr := filepath.Rel(cfg.ProjectPath, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDir(cfg, path, rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		kind, ok := kindOf(d.Name())
		if !ok || contract.ShouldIgnore(rel, cfg.Excludes) {
			return nil
		}
		files = append(files, candidate{path: path, rel: rel, kind: kind})
		return nil
	})
	return files, err
}

// skipDir reports whether a directory is pruned from the walk.
// Exclude prefixes are relative to the project root, so a nested package
// named like an excluded directory is still scanned.
func skipDir(cfg *contract.Config, path, rel, name string) bool {
	if _, ok := vcsDirs[name]; ok {
		return true
	}
	if path == cfg.OutputDir {
		return true
	}
	return contract.ShouldIgnore(rel+"/", cfg.Excludes)
}
