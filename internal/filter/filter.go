// Package filter implements extension-based include/exclude decisions
package filter

import (
	"path"
	"strings"
)

// ExtensionFilter holds the optional include and exclude extension
// sets. When both are configured the include set wins and the exclude
// set is never consulted. That precedence is a deliberate, documented
// rule, not an accident of evaluation order.
type ExtensionFilter struct {
	include map[string]struct{}
	exclude map[string]struct{}
}

// New builds an ExtensionFilter from raw extension lists. Extensions
// are normalized: lower-cased, leading dot stripped, empties dropped.
func New(include, exclude []string) *ExtensionFilter {
	return &ExtensionFilter{
		include: normalize(include),
		exclude: normalize(exclude),
	}
}

func normalize(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		clean := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if clean != "" {
			m[clean] = struct{}{}
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// Ext extracts the normalized extension from a relative path: the
// lower-cased text after the last dot of the base name, or "" when the
// name contains no dot.
func Ext(relativePath string) string {
	base := path.Base(relativePath)
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// Allow reports whether the file at relativePath passes the filter.
func (f *ExtensionFilter) Allow(relativePath string) bool {
	ext := Ext(relativePath)
	if f.include != nil {
		_, ok := f.include[ext]
		return ok
	}
	if f.exclude != nil {
		if _, ok := f.exclude[ext]; ok {
			return false
		}
	}
	return true
}
