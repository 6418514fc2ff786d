package discover

import "sort"

// RootSet is an unordered set of project roots keyed by canonical path.
type RootSet map[string]struct{}

// NewRootSet returns a set holding the given roots.
func NewRootSet(roots ...string) RootSet {
	s := make(RootSet, len(roots))
	for _, r := range roots {
		s.Add(r)
	}
	return s
}

// Add inserts root. Adding an existing root is a no-op.
func (s RootSet) Add(root string) {
	s[root] = struct{}{}
}

// Has reports whether root is in the set.
func (s RootSet) Has(root string) bool {
	_, ok := s[root]
	return ok
}

// Len returns the number of roots.
func (s RootSet) Len() int {
	return len(s)
}

// Sorted returns the roots in lexical order. The order carries no meaning
// beyond stable output.
func (s RootSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
