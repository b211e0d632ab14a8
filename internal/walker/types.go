// Package walker handles deterministic directory traversal
package walker

// Candidate is a filesystem entry discovered during traversal, before
// any filtering decisions are applied.
type Candidate struct {
	Path string // full path, used for reading
	Rel  string // path relative to the traversal root, forward slashes
}

// WalkFunc is the callback invoked for every candidate file.
type WalkFunc func(c Candidate) error

// SkipReason clarifies why a traversal entry was not yielded.
type SkipReason string

const (
	ReasonUnreadableDir SkipReason = "unreadable directory"
	ReasonNotRegular    SkipReason = "not a regular file"
	ReasonBrokenLink    SkipReason = "broken symlink"
	ReasonDirSymlink    SkipReason = "directory symlink"
	ReasonSizeLimit     SkipReason = "size limit exceeded"
)

// SkipFunc receives traversal-level skips. Candidates rejected by the
// filters are the selector's business and never show up here.
type SkipFunc func(relativePath string, reason SkipReason, err error)
