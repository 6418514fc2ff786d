// Package paths canonicalizes file system paths so that project roots and
// changed files can be compared by plain prefix matching.
package paths

import (
	"fmt"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of resolved directories remembered by
// a Canonicalizer.
const DefaultCacheSize = 4096

// Canonicalizer turns caller-supplied paths into absolute, symlink-free
// paths anchored at a fixed base directory. Resolved directories are
// memoized for the lifetime of the Canonicalizer.
type Canonicalizer struct {
	dirs *lru.Cache[string, string]
	base string
}

// New creates a Canonicalizer anchored at base. Relative paths given to
// Canonical are interpreted relative to base.
func New(base string, cacheSize int) (*Canonicalizer, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	dirs, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating path cache: %w", err)
	}

	realBase, err := Resolve(base)
	if err != nil {
		return nil, err
	}

	return &Canonicalizer{dirs: dirs, base: realBase}, nil
}

// Base returns the canonical base directory.
func (c *Canonicalizer) Base() string {
	return c.base
}

// Canonical returns the canonical form of p. The path does not have to
// exist: symlinks are resolved for the longest existing prefix and the
// missing suffix is appended unchanged.
func (c *Canonicalizer) Canonical(p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.base, p)
	}
	p = filepath.Clean(p)

	dir := filepath.Dir(p)
	if dir == p {
		return p
	}
	return filepath.Join(c.resolveDir(dir), filepath.Base(p))
}

// resolveDir resolves symlinks in dir, walking up to the longest existing
// prefix when dir itself does not exist.
func (c *Canonicalizer) resolveDir(dir string) string {
	if resolved, ok := c.dirs.Get(dir); ok {
		return resolved
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		parent := filepath.Dir(dir)
		if parent == dir {
			resolved = dir
		} else {
			resolved = filepath.Join(c.resolveDir(parent), filepath.Base(dir))
		}
	}

	c.dirs.Add(dir, resolved)
	return resolved
}

// Resolve returns the absolute, symlink-resolved form of an existing path.
func Resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving symlinks in %s: %w", abs, err)
	}
	return real, nil
}

// Contains reports whether path is root or lies beneath it. Both paths must
// already be canonical.
func Contains(root, path string) bool {
	if root == path {
		return true
	}
	// A trailing separator keeps "/repo/pkg" from matching "/repo/pkg2".
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// Depth returns the number of components in a clean path.
func Depth(p string) int {
	n := 0
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(p)), "/") {
		if part != "" && part != "." {
			n++
		}
	}
	return n
}
