// Package equipment compares vehicle feature lists case-insensitively while
// keeping the original spelling for display.
package equipment

import (
	"strings"
)

// Key normalizes a feature name for comparison: lowercased, trimmed, and
// with internal whitespace collapsed to single spaces.
func Key(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Set is an ordered set of feature names keyed by their normalized form.
// The first spelling seen for a key is the one reported back.
type Set struct {
	keys     []string
	original map[string]string
}

// NewSet builds a Set from a feature list, skipping blanks and duplicates.
func NewSet(items []string) *Set {
	s := &Set{original: make(map[string]string, len(items))}
	for _, item := range items {
		k := Key(item)
		if k == "" {
			continue
		}
		if _, ok := s.original[k]; ok {
			continue
		}
		s.original[k] = strings.TrimSpace(item)
		s.keys = append(s.keys, k)
	}
	return s
}

// Missing returns the features in s that other lacks, in s's order and
// original spelling.
func (s *Set) Missing(other *Set) []string {
	var out []string
	for _, k := range s.keys {
		if _, ok := other.original[k]; !ok {
			out = append(out, s.original[k])
		}
	}
	return out
}

// Compare returns the features want has and got lacks (missing) and the
// features got has and want lacks (extra).
func Compare(want, got []string) (missing, extra []string) {
	w := NewSet(want)
	g := NewSet(got)
	return w.Missing(g), g.Missing(w)
}
