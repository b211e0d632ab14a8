// Package app ties configuration, filtering, traversal and rendering
// into one run
package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/bethropolis/cocat/internal/config"
	"github.com/bethropolis/cocat/internal/filter"
	"github.com/bethropolis/cocat/internal/ignore"
	"github.com/bethropolis/cocat/internal/logger"
	"github.com/bethropolis/cocat/internal/printer"
	"github.com/bethropolis/cocat/internal/selector"
	"github.com/bethropolis/cocat/internal/stats"
	"github.com/bethropolis/cocat/internal/summary"
	"github.com/bethropolis/cocat/internal/walker"
)

// App executes one concatenation run.
type App struct {
	cfg  *config.Config
	fsys afero.Fs
}

// New creates an App for the given configuration.
func New(cfg *config.Config, fsys afero.Fs) *App {
	return &App{cfg: cfg, fsys: fsys}
}

// Run performs the full pass: validate, load rules, select, render,
// report. Rendered output goes to stdout (or the configured file),
// diagnostics go to stderr only. A configuration problem aborts before
// any output bytes are written; per-file problems are counted and never
// fatal.
func (a *App) Run(stdout, stderr io.Writer) error {
	start := time.Now()

	if err := a.cfg.Finalize(a.fsys); err != nil {
		return err
	}

	log := logger.New(stderr, a.logLevel(), a.cfg.UseColors)

	format, err := printer.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	// Rules load before the output file is touched so a malformed
	// pattern leaves an existing output file intact.
	matcherOpts := []ignore.Option{ignore.WithLogger(log)}
	if a.cfg.UseGitignore {
		matcherOpts = append(matcherOpts, ignore.WithGitignore(true))
	}
	matcher, err := ignore.New(a.fsys, a.cfg.RootDir, a.cfg.IgnorePath(), matcherOpts...)
	if err != nil {
		return err
	}

	output := stdout
	if a.cfg.OutputFile != "" {
		f, err := a.fsys.Create(a.cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("app: cannot create output file %q: %w", a.cfg.OutputFile, err)
		}
		defer f.Close()
		output = f
	}

	st := &stats.RunStats{}
	p := printer.New(a.fsys, output, st).WithFormat(format)

	walkOpts := []walker.Option{
		walker.WithLogger(log),
		walker.WithRecursive(a.cfg.Recursive),
		walker.WithFollowDirSymlinks(a.cfg.FollowDirSymlinks),
		walker.WithSkipFunc(func(rel string, reason walker.SkipReason, err error) {
			if reason == walker.ReasonUnreadableDir {
				st.SkippedDirs++
			} else {
				st.SkippedTraversal++
			}
		}),
	}
	if a.cfg.MaxFileSizeMB > 0 {
		walkOpts = append(walkOpts, walker.WithMaxFileSize(a.cfg.MaxFileSizeMB*1024*1024))
	}

	sel := selector.New(a.fsys, a.cfg.RootDir, matcher, filter.New(a.cfg.Include, a.cfg.Exclude), st)
	sel.WalkOptions(walkOpts...)
	sel.SkipRel(a.cfg.IgnoreFile)
	if rel, ok := a.outputRel(); ok {
		sel.SkipRel(rel)
	}

	log.Info("Scanning directory: %s", a.cfg.RootDir)

	err = sel.Run(func(c walker.Candidate, d selector.Decision) error {
		switch d.Outcome {
		case selector.Included:
			if renderErr := p.Render(c.Path, c.Rel); renderErr != nil {
				st.ReadErrors++
				log.Warn("%q %s: %v", c.Rel, selector.SkippedUnreadable, renderErr)
				return nil
			}
			log.Debug("Included %q", c.Rel)
		case selector.ExcludedByPattern:
			log.Info("Excluded %q (pattern %q)", c.Rel, d.Rule)
		case selector.ExcludedByExtension:
			log.Info("Excluded %q (extension filter)", c.Rel)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := p.Finalize(); err != nil {
		return fmt.Errorf("app: finalizing output: %w", err)
	}

	summary.Display(log, st, time.Since(start))
	return nil
}

// outputRel returns the output file's path relative to the root when it
// lives inside the tree. The run would otherwise concatenate its own
// (truncated) output.
func (a *App) outputRel() (string, bool) {
	if a.cfg.OutputFile == "" {
		return "", false
	}
	abs, err := filepath.Abs(a.cfg.OutputFile)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(a.cfg.RootDir, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// logLevel maps the verbosity flags onto logger levels: verbose shows
// per-decision diagnostics and the summary, the default shows warnings
// only, quiet shows errors only.
func (a *App) logLevel() logger.Level {
	switch {
	case a.cfg.Verbose:
		return logger.LevelDebug
	case a.cfg.Quiet:
		return logger.LevelError
	default:
		return logger.LevelWarn
	}
}
