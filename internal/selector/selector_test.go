package selector

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/cocat/internal/filter"
	"github.com/bethropolis/cocat/internal/ignore"
	"github.com/bethropolis/cocat/internal/stats"
	"github.com/bethropolis/cocat/internal/walker"
)

type visit struct {
	rel      string
	decision Decision
}

func specTree(t *testing.T, ignoreContent string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"/tree/a.py":     "alpha\n",
		"/tree/b.log":    "beta\n",
		"/tree/sub/c.py": "gamma\n",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
	if ignoreContent != "" {
		require.NoError(t, afero.WriteFile(fsys, "/tree/.ignore", []byte(ignoreContent), 0644))
	}
	return fsys
}

func runSelector(t *testing.T, fsys afero.Fs, include, exclude []string, st *stats.RunStats, opts ...walker.Option) []visit {
	t.Helper()
	m, err := ignore.New(fsys, "/tree", "/tree/.ignore")
	require.NoError(t, err)

	sel := New(fsys, "/tree", m, filter.New(include, exclude), st)
	sel.WalkOptions(opts...)
	sel.SkipRel(".ignore")

	var visits []visit
	require.NoError(t, sel.Run(func(c walker.Candidate, d Decision) error {
		visits = append(visits, visit{rel: c.Rel, decision: d})
		return nil
	}))
	return visits
}

func TestIncludeExtensionScenario(t *testing.T) {
	fsys := specTree(t, "")
	st := &stats.RunStats{}

	visits := runSelector(t, fsys, []string{"py"}, nil, st)

	require.Len(t, visits, 3)
	assert.Equal(t, "a.py", visits[0].rel)
	assert.Equal(t, Included, visits[0].decision.Outcome)
	assert.Equal(t, "b.log", visits[1].rel)
	assert.Equal(t, ExcludedByExtension, visits[1].decision.Outcome)
	assert.Equal(t, "sub/c.py", visits[2].rel)
	assert.Equal(t, Included, visits[2].decision.Outcome)

	assert.Equal(t, 3, st.Scanned)
	assert.Equal(t, 1, st.ExcludedByExtension)
	assert.Equal(t, 0, st.ExcludedByPattern)
}

func TestNonRecursiveScenario(t *testing.T) {
	fsys := specTree(t, "")
	st := &stats.RunStats{}

	visits := runSelector(t, fsys, []string{"py"}, nil, st, walker.WithRecursive(false))

	require.Len(t, visits, 2)
	assert.Equal(t, "a.py", visits[0].rel)
	assert.Equal(t, "b.log", visits[1].rel)
	assert.Equal(t, 2, st.Scanned) // sub/c.py never scanned
}

func TestIgnorePatternScenario(t *testing.T) {
	fsys := specTree(t, "b\\.log\n")
	st := &stats.RunStats{}

	visits := runSelector(t, fsys, nil, nil, st)

	require.Len(t, visits, 3)
	assert.Equal(t, Included, visits[0].decision.Outcome)
	assert.Equal(t, ExcludedByPattern, visits[1].decision.Outcome)
	assert.Equal(t, `b\.log`, visits[1].decision.Rule)
	assert.Equal(t, Included, visits[2].decision.Outcome)

	assert.Equal(t, 1, st.ExcludedByPattern)
}

// The extension check runs first; a file that fails it never reaches
// the regex rules, so the reported outcome is the extension one.
func TestExtensionCheckedBeforePatterns(t *testing.T) {
	fsys := specTree(t, "b\\.log\n")
	st := &stats.RunStats{}

	visits := runSelector(t, fsys, []string{"py"}, nil, st)

	assert.Equal(t, "b.log", visits[1].rel)
	assert.Equal(t, ExcludedByExtension, visits[1].decision.Outcome)
	assert.Empty(t, visits[1].decision.Rule)
}

// The ignore-file itself is never a candidate.
func TestIgnoreFileIsNotACandidate(t *testing.T) {
	fsys := specTree(t, "# nothing\n")
	st := &stats.RunStats{}

	visits := runSelector(t, fsys, nil, nil, st)

	for _, v := range visits {
		assert.NotEqual(t, ".ignore", v.rel)
	}
	assert.Equal(t, 3, st.Scanned)
}

func TestMissingIgnoreFileSameAsEmpty(t *testing.T) {
	missing := specTree(t, "")
	empty := specTree(t, "\n# only a comment\n")

	stMissing := &stats.RunStats{}
	stEmpty := &stats.RunStats{}

	visitsMissing := runSelector(t, missing, nil, nil, stMissing)
	visitsEmpty := runSelector(t, empty, nil, nil, stEmpty)

	assert.Equal(t, visitsMissing, visitsEmpty)
	assert.Equal(t, *stMissing, *stEmpty)
}
