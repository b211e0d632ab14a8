// Package ignore decides which candidate paths are excluded from a run
//
// Two rule sources are supported: the run's ignore-file, whose lines
// are regular expressions matched against the full path relative to
// the target directory, and (optionally) the repository's .gitignore
// rules. It uses the functional options pattern for configuration.
package ignore

import (
	gitignore "github.com/denormal/go-gitignore"
	"github.com/spf13/afero"

	"github.com/bethropolis/cocat/internal/utils"
)

// GitignoreRule is the rule name reported when a path is excluded by
// repository .gitignore rules rather than an ignore-file pattern.
const GitignoreRule = ".gitignore"

// Matcher composes the ignore-file pattern set with optional gitignore
// rules into a single exclusion decision.
type Matcher struct {
	patterns     *PatternSet
	repoIgnore   gitignore.GitIgnore
	useGitignore bool
	logger       utils.Logger
}

// New loads the ignore-file at ignorePath and builds a Matcher rooted
// at rootDir. A malformed pattern fails the whole load.
func New(fsys afero.Fs, rootDir, ignorePath string, opts ...Option) (*Matcher, error) {
	m := &Matcher{logger: &utils.NoopLogger{}}
	for _, opt := range opts {
		opt(m)
	}

	patterns, err := LoadPatterns(fsys, ignorePath)
	if err != nil {
		return nil, err
	}
	m.patterns = patterns
	m.logger.Debug("ignore: loaded %d pattern(s) from %s", patterns.Len(), ignorePath)

	if m.useGitignore {
		repo, repoErr := gitignore.NewRepository(rootDir)
		if repoErr != nil {
			m.logger.Warn("ignore: could not load .gitignore rules from %q: %v", rootDir, repoErr)
		} else {
			m.repoIgnore = repo
		}
	}

	return m, nil
}

// Match reports whether relativePath should be excluded and which rule
// matched. Ignore-file patterns are consulted before gitignore rules.
func (m *Matcher) Match(relativePath string) (bool, string) {
	if ok, rule := m.patterns.Match(relativePath); ok {
		m.logger.Debug("ignore: %q matched pattern %q", relativePath, rule)
		return true, rule
	}
	if m.repoIgnore != nil {
		ignored, included := m.checkRepo(relativePath)
		if ignored && !included {
			m.logger.Debug("ignore: %q matched .gitignore rules", relativePath)
			return true, GitignoreRule
		}
	}
	return false, ""
}

// checkRepo wraps the gitignore library defensively; it has been seen
// panicking on unusual paths.
func (m *Matcher) checkRepo(relativePath string) (ignored, included bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("ignore: panic in gitignore matcher for %q: %v", relativePath, r)
			ignored, included = false, false
		}
	}()
	ignored = m.repoIgnore.Ignore(relativePath)
	if ignored {
		included = m.repoIgnore.Include(relativePath)
	}
	return ignored, included
}
