// Package summary handles display of run results and statistics
package summary

import (
	"time"

	"github.com/bethropolis/cocat/internal/stats"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// Display emits the human-readable run summary through the logger. The
// logger's level decides whether any of it reaches the user; the
// rendered output itself is never touched.
func Display(log Logger, st *stats.RunStats, duration time.Duration) {
	log.Info("Scanned %d file(s): %d included, %d excluded.", st.Scanned, st.Included, st.Excluded())
	if st.ExcludedByPattern > 0 {
		log.Info("Excluded by ignore pattern: %d", st.ExcludedByPattern)
	}
	if st.ExcludedByExtension > 0 {
		log.Info("Excluded by extension filter: %d", st.ExcludedByExtension)
	}
	if st.SkippedDirs > 0 {
		log.Info("Unreadable directories skipped: %d", st.SkippedDirs)
	}
	if st.SkippedTraversal > 0 {
		log.Info("Other entries skipped during traversal: %d", st.SkippedTraversal)
	}
	if st.ReadErrors > 0 {
		log.Info("Files skipped due to read errors: %d", st.ReadErrors)
	}
	if st.DecodingIssues > 0 {
		log.Info("Files rendered with repaired encoding: %d", st.DecodingIssues)
	}
	log.Info("Wrote %d bytes in %v.", st.BytesWritten, duration.Round(time.Millisecond))
}
