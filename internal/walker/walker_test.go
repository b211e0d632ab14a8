package walker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
	return fsys
}

func collect(t *testing.T, fsys afero.Fs, root string, opts ...Option) []string {
	t.Helper()
	var rels []string
	err := Walk(fsys, root, func(c Candidate) error {
		rels = append(rels, c.Rel)
		return nil
	}, opts...)
	require.NoError(t, err)
	return rels
}

func TestWalkDepthFirstLexicographic(t *testing.T) {
	fsys := memTree(t, map[string]string{
		"/tree/c.txt":   "c",
		"/tree/a.py":    "a",
		"/tree/b/y.txt": "y",
		"/tree/b/x.txt": "x",
	})

	rels := collect(t, fsys, "/tree")
	assert.Equal(t, []string{"a.py", "b/x.txt", "b/y.txt", "c.txt"}, rels)
}

func TestWalkIsDeterministic(t *testing.T) {
	fsys := memTree(t, map[string]string{
		"/tree/z.txt":       "z",
		"/tree/a.txt":       "a",
		"/tree/m/one.txt":   "1",
		"/tree/m/two.txt":   "2",
		"/tree/m/n/three.x": "3",
	})

	first := collect(t, fsys, "/tree")
	second := collect(t, fsys, "/tree")
	assert.Equal(t, first, second)
}

func TestWalkNonRecursive(t *testing.T) {
	fsys := memTree(t, map[string]string{
		"/tree/a.py":     "a",
		"/tree/b.log":    "b",
		"/tree/sub/c.py": "c",
	})

	rels := collect(t, fsys, "/tree", WithRecursive(false))
	assert.Equal(t, []string{"a.py", "b.log"}, rels)
	for _, rel := range rels {
		assert.NotContains(t, rel, "/")
	}
}

func TestWalkUnreadableRootIsFatal(t *testing.T) {
	fsys := afero.NewMemMapFs()

	err := Walk(fsys, "/missing", func(c Candidate) error { return nil })
	require.Error(t, err)
}

func TestWalkCallbackErrorStopsWalk(t *testing.T) {
	fsys := memTree(t, map[string]string{
		"/tree/a.txt": "a",
		"/tree/b.txt": "b",
	})

	boom := errors.New("boom")
	var seen int
	err := Walk(fsys, "/tree", func(c Candidate) error {
		seen++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, seen)
}

func TestWalkMaxFileSize(t *testing.T) {
	fsys := memTree(t, map[string]string{
		"/tree/small.txt": "ok",
		"/tree/big.txt":   "0123456789abcdef",
	})

	var skipped []string
	rels := collect(t, fsys, "/tree",
		WithMaxFileSize(8),
		WithSkipFunc(func(rel string, reason SkipReason, err error) {
			assert.Equal(t, ReasonSizeLimit, reason)
			skipped = append(skipped, rel)
		}))

	assert.Equal(t, []string{"small.txt"}, rels)
	assert.Equal(t, []string{"big.txt"}, skipped)
}

func TestWalkSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "real"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real", "inner.txt"), []byte("inner"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain.txt"), []byte("plain"), 0644))
	if err := os.Symlink(filepath.Join(dir, "plain.txt"), filepath.Join(dir, "filelink.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "dirlink")))

	fsys := afero.NewOsFs()

	var skipped []SkipReason
	rels := collect(t, fsys, dir, WithSkipFunc(func(rel string, reason SkipReason, err error) {
		skipped = append(skipped, reason)
	}))
	// File symlinks are followed, directory symlinks are not descended.
	assert.Equal(t, []string{"filelink.txt", "plain.txt", "real/inner.txt"}, rels)
	assert.Equal(t, []SkipReason{ReasonDirSymlink}, skipped)

	rels = collect(t, fsys, dir, WithFollowDirSymlinks(true))
	assert.Equal(t, []string{"dirlink/inner.txt", "filelink.txt", "plain.txt", "real/inner.txt"}, rels)
}

func TestWalkUnreadableSubdirIsSkipped(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "locked"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locked", "hidden.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "open.txt"), []byte("x"), 0644))
	require.NoError(t, os.Chmod(filepath.Join(dir, "locked"), 0000))
	t.Cleanup(func() { os.Chmod(filepath.Join(dir, "locked"), 0755) })

	var skipped []string
	rels := collect(t, afero.NewOsFs(), dir, WithSkipFunc(func(rel string, reason SkipReason, err error) {
		assert.Equal(t, ReasonUnreadableDir, reason)
		skipped = append(skipped, rel)
	}))

	assert.Equal(t, []string{"open.txt"}, rels)
	assert.Equal(t, []string{"locked"}, skipped)
}
