// Package selector composes traversal with the filtering rules into a
// per-candidate decision stream
package selector

import (
	"github.com/spf13/afero"

	"github.com/bethropolis/cocat/internal/filter"
	"github.com/bethropolis/cocat/internal/ignore"
	"github.com/bethropolis/cocat/internal/stats"
	"github.com/bethropolis/cocat/internal/walker"
)

// VisitFunc receives every candidate with its decision, in traversal
// order. That order determines output order and is part of the
// external contract.
type VisitFunc func(c walker.Candidate, d Decision) error

// Selector drives the walker and applies the extension filter and the
// ignore rules to each candidate.
type Selector struct {
	fsys     afero.Fs
	root     string
	matcher  *ignore.Matcher
	filter   *filter.ExtensionFilter
	stats    *stats.RunStats
	skipRel  map[string]struct{}
	walkOpts []walker.Option
}

// New creates a Selector over the tree rooted at root.
func New(fsys afero.Fs, root string, m *ignore.Matcher, f *filter.ExtensionFilter, st *stats.RunStats) *Selector {
	return &Selector{
		fsys:    fsys,
		root:    root,
		matcher: m,
		filter:  f,
		stats:   st,
		skipRel: make(map[string]struct{}),
	}
}

// SkipRel marks relative paths that are never considered candidates,
// such as the ignore-file itself or the output file when it lives
// inside the tree.
func (s *Selector) SkipRel(rels ...string) {
	for _, rel := range rels {
		s.skipRel[rel] = struct{}{}
	}
}

// WalkOptions sets the options passed through to the walker.
func (s *Selector) WalkOptions(opts ...walker.Option) {
	s.walkOpts = opts
}

// Run enumerates candidates and hands each one to visit together with
// its decision. The sequence is produced lazily and consumed exactly
// once per run.
func (s *Selector) Run(visit VisitFunc) error {
	return walker.Walk(s.fsys, s.root, func(c walker.Candidate) error {
		if _, ok := s.skipRel[c.Rel]; ok {
			return nil
		}
		s.stats.Scanned++

		d := s.decide(c)
		switch d.Outcome {
		case ExcludedByExtension:
			s.stats.ExcludedByExtension++
		case ExcludedByPattern:
			s.stats.ExcludedByPattern++
		}
		return visit(c, d)
	}, s.walkOpts...)
}

// decide applies the filters in their fixed order: the cheap extension
// check first, the regex rules only for files that survive it.
func (s *Selector) decide(c walker.Candidate) Decision {
	if !s.filter.Allow(c.Rel) {
		return Decision{Outcome: ExcludedByExtension}
	}
	if ok, rule := s.matcher.Match(c.Rel); ok {
		return Decision{Outcome: ExcludedByPattern, Rule: rule}
	}
	return Decision{Outcome: Included}
}
