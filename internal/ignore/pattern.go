package ignore

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// Pattern is one compiled ignore rule plus its original source text,
// kept for diagnostics.
type Pattern struct {
	Source string
	Line   int
	re     *regexp.Regexp
}

// PatternSet holds the ordered ignore rules loaded from an ignore-file.
type PatternSet struct {
	patterns []Pattern
}

// LoadPatterns reads the ignore-file at path and compiles its rules.
// Blank lines and lines whose first non-whitespace character is '#' are
// skipped. A line that does not compile fails the whole load so the
// filtering stays predictable rather than partially applied. A missing
// file yields an empty set; the ignore-file is advisory.
func LoadPatterns(fsys afero.Fs, path string) (*PatternSet, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PatternSet{}, nil
		}
		return nil, fmt.Errorf("ignore: opening %s: %w", path, err)
	}
	defer f.Close()

	set := &PatternSet{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Anchored so the rule must match the full relative path.
		re, err := regexp.Compile("^(?:" + line + ")$")
		if err != nil {
			return nil, fmt.Errorf("ignore: invalid pattern %q at %s:%d: %w", line, path, lineNo, err)
		}
		set.patterns = append(set.patterns, Pattern{Source: line, Line: lineNo, re: re})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ignore: reading %s: %w", path, err)
	}
	return set, nil
}

// Match reports whether relativePath is matched by any rule, and the
// source text of the first matching rule in file order. Order only
// affects which rule is reported, never the boolean result.
func (s *PatternSet) Match(relativePath string) (bool, string) {
	for _, p := range s.patterns {
		if p.re.MatchString(relativePath) {
			return true, p.Source
		}
	}
	return false, ""
}

// Len returns the number of loaded rules.
func (s *PatternSet) Len() int {
	return len(s.patterns)
}
