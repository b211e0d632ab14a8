package walker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Walk traverses the tree rooted at root, invoking walkFn for every
// regular file. Traversal is depth-first with directory entries visited
// in lexicographic order, so repeated runs over an unchanged tree yield
// candidates in the same order. Only regular files are yielded; file
// symlinks are resolved and followed, directory symlinks are not
// descended into unless the option says so.
//
// An unreadable subdirectory is reported through the skip callback and
// never aborts the walk. Only an unreadable root is fatal.
func Walk(fsys afero.Fs, root string, walkFn WalkFunc, opts ...Option) error {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	w := &walker{fsys: fsys, opts: options, walkFn: walkFn}
	return w.walkDir(root, "")
}

type walker struct {
	fsys   afero.Fs
	opts   WalkOptions
	walkFn WalkFunc
}

func (w *walker) skip(rel string, reason SkipReason, err error) {
	if err != nil {
		w.opts.Logger.Warn("walker: skipping %q (%s): %v", rel, reason, err)
	} else {
		w.opts.Logger.Debug("walker: skipping %q (%s)", rel, reason)
	}
	if w.opts.SkipFn != nil {
		w.opts.SkipFn(rel, reason, err)
	}
}

func (w *walker) walkDir(dir, rel string) error {
	// afero.ReadDir returns entries sorted by name.
	entries, err := afero.ReadDir(w.fsys, dir)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("walker: reading root directory %q: %w", dir, err)
		}
		w.skip(rel, ReasonUnreadableDir, err)
		return nil
	}

	for _, entry := range entries {
		childRel := entry.Name()
		if rel != "" {
			childRel = rel + "/" + entry.Name()
		}
		childPath := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if !w.opts.Recursive {
				continue
			}
			if err := w.walkDir(childPath, childRel); err != nil {
				return err
			}
			continue
		}

		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			resolved, statErr := w.fsys.Stat(childPath)
			if statErr != nil {
				w.skip(childRel, ReasonBrokenLink, statErr)
				continue
			}
			if resolved.IsDir() {
				if w.opts.Recursive && w.opts.FollowDirSymlinks {
					if err := w.walkDir(childPath, childRel); err != nil {
						return err
					}
				} else {
					w.skip(childRel, ReasonDirSymlink, nil)
				}
				continue
			}
			info = resolved
		}

		if !info.Mode().IsRegular() {
			w.skip(childRel, ReasonNotRegular, nil)
			continue
		}
		if w.opts.MaxFileSize > 0 && info.Size() > w.opts.MaxFileSize {
			w.skip(childRel, ReasonSizeLimit, nil)
			continue
		}

		w.opts.Logger.Debug("walker: yielding %q", childRel)
		if err := w.walkFn(Candidate{Path: childPath, Rel: childRel}); err != nil {
			return err
		}
	}
	return nil
}
