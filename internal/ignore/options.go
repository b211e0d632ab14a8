package ignore

import "github.com/bethropolis/cocat/internal/utils"

// Option functions for configuration
type Option func(*Matcher)

// WithGitignore enables repository .gitignore rules in addition to the
// ignore-file patterns.
func WithGitignore(enabled bool) Option {
	return func(m *Matcher) {
		m.useGitignore = enabled
	}
}

// WithLogger sets the logger used for rule diagnostics.
func WithLogger(logger utils.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}
