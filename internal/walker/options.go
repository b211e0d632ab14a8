package walker

import "github.com/bethropolis/cocat/internal/utils"

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger            utils.Logger
	Recursive         bool
	FollowDirSymlinks bool
	MaxFileSize       int64 // bytes, 0 = no limit
	SkipFn            SkipFunc
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:    &utils.NoopLogger{},
		Recursive: true,
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithRecursive enables or disables descending into subdirectories
func WithRecursive(recursive bool) Option {
	return func(opts *WalkOptions) {
		opts.Recursive = recursive
	}
}

// WithFollowDirSymlinks enables descending into directory symlinks.
// Off by default: a cyclic link would make the walk unbounded.
func WithFollowDirSymlinks(follow bool) Option {
	return func(opts *WalkOptions) {
		opts.FollowDirSymlinks = follow
	}
}

// WithMaxFileSize sets the maximum file size to yield in bytes
func WithMaxFileSize(maxBytes int64) Option {
	return func(opts *WalkOptions) {
		opts.MaxFileSize = maxBytes
	}
}

// WithSkipFunc sets a callback for traversal-level skips
func WithSkipFunc(fn SkipFunc) Option {
	return func(opts *WalkOptions) {
		opts.SkipFn = fn
	}
}
