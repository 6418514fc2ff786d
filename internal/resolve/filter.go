package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSources are the base-name patterns of source files.
var DefaultSources = []string{"*.rs"}

// DefaultNames are the manifest and lock file names that count as relevant
// changes on their own.
var DefaultNames = []string{"Cargo.toml", "Cargo.lock"}

// Filter decides whether a changed file can affect a project root.
type Filter struct {
	// Patterns are doublestar patterns matched against the file's base name,
	// e.g. "*.rs" or "*.{rs,toml}".
	Patterns []string

	// Names are exact base names, e.g. "Cargo.toml".
	Names []string
}

// DefaultFilter matches Rust sources plus Cargo manifests and lock files.
func DefaultFilter() Filter {
	return Filter{Patterns: DefaultSources, Names: DefaultNames}
}

// Relevant reports whether the file at p should trigger a check.
func (f Filter) Relevant(p string) bool {
	name := filepath.Base(p)
	for _, n := range f.Names {
		if name == n {
			return true
		}
	}
	for _, pattern := range f.Patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Validate checks that every pattern is well formed.
func (f Filter) Validate() error {
	for _, pattern := range f.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid source pattern %q", pattern)
		}
	}
	return nil
}
