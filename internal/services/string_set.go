package services

import (
	"sort"
)

// stringSet is an unordered set of strings.
type stringSet map[string]struct{}

func newStringSet(values ...string) stringSet {
	s := make(stringSet, len(values))
	s.add(values...)
	return s
}

func (s stringSet) add(values ...string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// containsAll reports whether every value is in the set.
func (s stringSet) containsAll(values []string) bool {
	for _, v := range values {
		if !s.has(v) {
			return false
		}
	}
	return true
}

// sorted returns the members in lexical order.
func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
