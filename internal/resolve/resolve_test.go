package resolve

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bianoble/cargo-hook/internal/discover"
	"github.com/bianoble/cargo-hook/internal/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(t *testing.T, base string, filter Filter) *Resolver {
	t.Helper()
	c, err := paths.New(base, 0)
	require.NoError(t, err)
	return New(filter, c)
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses unix absolute paths")
	}
}

func extFilter() Filter {
	return Filter{Patterns: []string{"*.ext"}, Names: DefaultNames}
}

func TestResolveScenario(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), extFilter())

	roots := discover.NewRootSet("/repo/pkgA", "/repo/pkgB")
	changed := []string{"/repo/pkgA/src/main.ext", "/repo/pkgB/readme.txt"}

	got := r.Resolve(changed, roots)
	assert.Equal(t, []string{"/repo/pkgA"}, got.Sorted())
}

func TestResolveNestedPicksDeepest(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), extFilter())

	roots := discover.NewRootSet("/a", "/a/b")
	got := r.Resolve([]string{"/a/b/x.ext"}, roots)
	assert.Equal(t, []string{"/a/b"}, got.Sorted())

	got = r.Resolve([]string{"/a/x.ext"}, roots)
	assert.Equal(t, []string{"/a"}, got.Sorted())
}

func TestResolveFilteredFileContributesNothing(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), extFilter())

	got := r.Resolve([]string{"/a/README.md"}, discover.NewRootSet("/a"))
	assert.Zero(t, got.Len())
}

func TestResolveManifestAndLockfileAreRelevant(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), DefaultFilter())

	roots := discover.NewRootSet("/repo/a", "/repo/b", "/repo/c")
	got := r.Resolve([]string{"/repo/a/Cargo.toml", "/repo/b/Cargo.lock", "/repo/c/build.sh"}, roots)
	assert.ElementsMatch(t, []string{"/repo/a", "/repo/b"}, got.Sorted())
}

func TestResolveUnownedFileIsSkipped(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), DefaultFilter())

	got := r.Resolve([]string{"/elsewhere/src/lib.rs"}, discover.NewRootSet("/repo"))
	assert.Zero(t, got.Len())
}

func TestResolveDeduplicates(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), DefaultFilter())

	changed := []string{
		"/repo/a/src/lib.rs",
		"/repo/a/src/main.rs",
		"/repo/a/Cargo.toml",
		"/repo/a/tests/it.rs",
	}
	got := r.Resolve(changed, discover.NewRootSet("/repo/a", "/repo/b"))
	assert.Equal(t, []string{"/repo/a"}, got.Sorted())
}

func TestResolveEmptyInput(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), DefaultFilter())

	assert.Zero(t, r.Resolve(nil, discover.NewRootSet("/repo")).Len())
	assert.Zero(t, r.Resolve([]string{"/repo/src/lib.rs"}, discover.NewRootSet()).Len())
}

func TestResolveIsSubsetAndIdempotent(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), DefaultFilter())

	roots := discover.NewRootSet("/w", "/w/x", "/w/x/y", "/w/z")
	changed := []string{
		"/w/x/y/deep.rs",
		"/w/x/shallow.rs",
		"/w/z/Cargo.lock",
		"/w/top.rs",
		"/w/x/y/notes.md",
		"/outside/file.rs",
	}

	first := r.Resolve(changed, roots)
	for root := range first {
		assert.True(t, roots.Has(root), "resolved root %s was not discovered", root)
	}

	reversed := make([]string, len(changed))
	for i, f := range changed {
		reversed[len(changed)-1-i] = f
	}
	second := r.Resolve(reversed, roots)

	assert.Equal(t, first, second)
	assert.ElementsMatch(t, []string{"/w", "/w/x", "/w/x/y", "/w/z"}, first.Sorted())
}

func TestResolveDoesNotMatchSiblingPrefix(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), DefaultFilter())

	got := r.Resolve([]string{"/repo/pkg2/src/lib.rs"}, discover.NewRootSet("/repo/pkg"))
	assert.Zero(t, got.Len())
}

func TestResolveRelativePathsAgainstBase(t *testing.T) {
	base := t.TempDir()
	realBase, err := filepath.EvalSymlinks(base)
	require.NoError(t, err)

	crate := filepath.Join(realBase, "crates", "core")
	require.NoError(t, os.MkdirAll(filepath.Join(crate, "src"), 0755))

	r := newResolver(t, base, DefaultFilter())
	roots := discover.NewRootSet(realBase, crate)

	got := r.Resolve([]string{filepath.Join("crates", "core", "src", "lib.rs")}, roots)
	assert.Equal(t, []string{crate}, got.Sorted())

	// Deleted files still resolve to the root that used to contain them.
	got = r.Resolve([]string{filepath.Join("crates", "core", "src", "removed", "old.rs")}, roots)
	assert.Equal(t, []string{crate}, got.Sorted())
}

func TestExplain(t *testing.T) {
	skipOnWindows(t)
	r := newResolver(t, t.TempDir(), DefaultFilter())

	roots := discover.NewRootSet("/repo/a")
	decisions := r.Explain([]string{"/repo/a/lib.rs", "/repo/a/README.md", "/other/lib.rs"}, roots)
	require.Len(t, decisions, 3)

	assert.Equal(t, ReasonOwned, decisions[0].Reason)
	assert.Equal(t, "/repo/a", decisions[0].Root)
	assert.Equal(t, ReasonFiltered, decisions[1].Reason)
	assert.Empty(t, decisions[1].Canonical)
	assert.Equal(t, ReasonUnowned, decisions[2].Reason)
	assert.Equal(t, "/other/lib.rs", decisions[2].Canonical)
}

func TestOwnerFilesystemRoot(t *testing.T) {
	skipOnWindows(t)
	assert.Equal(t, "/", Owner("/src/main.rs", discover.NewRootSet("/")))
}

func TestFilterRelevant(t *testing.T) {
	f := DefaultFilter()

	tests := []struct {
		path string
		want bool
	}{
		{"src/main.rs", true},
		{"Cargo.toml", true},
		{"nested/Cargo.lock", true},
		{"README.md", false},
		{"Cargo.toml.bak", false},
		{"cargo.toml", false},
		{"rs", false},
		{"build.rs.orig", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Relevant(tt.path), "Relevant(%q)", tt.path)
	}
}

func TestFilterBraceAlternatives(t *testing.T) {
	f := Filter{Patterns: []string{"*.{rs,toml}"}}
	assert.True(t, f.Relevant("a/b.rs"))
	assert.True(t, f.Relevant("rustfmt.toml"))
	assert.False(t, f.Relevant("a/b.md"))
}

func TestFilterValidate(t *testing.T) {
	assert.NoError(t, DefaultFilter().Validate())
	assert.Error(t, Filter{Patterns: []string{"*.{rs"}}.Validate())
}
