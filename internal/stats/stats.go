// Package stats accumulates per-run counters
package stats

// RunStats is the mutable accumulator for one run. It is created by the
// run that owns it and is never shared across runs, which keeps the
// pipeline reentrant and testable without process-wide state.
type RunStats struct {
	Scanned             int   // candidates seen by the selector
	Included            int   // files rendered into the output
	ExcludedByPattern   int   // rejected by an ignore rule
	ExcludedByExtension int   // rejected by the extension filter
	SkippedDirs         int   // unreadable subdirectories
	SkippedTraversal    int   // non-regular files, broken links, oversize files
	ReadErrors          int   // included files that failed to read
	DecodingIssues      int   // files rendered with repaired encoding
	BytesWritten        int64 // total output size
}

// Excluded returns the number of candidates rejected by either filter.
func (s *RunStats) Excluded() int {
	return s.ExcludedByPattern + s.ExcludedByExtension
}
