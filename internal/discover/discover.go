// Package discover finds project roots: directories that directly contain
// a build manifest marker file.
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"k8s.io/klog/v2"
)

// DefaultMarkers are the manifest file names that mark a project root.
var DefaultMarkers = []string{"Cargo.toml"}

// Discoverer walks a directory tree looking for marker files.
type Discoverer struct {
	// Markers lists the file names that mark a project root.
	// Empty means DefaultMarkers.
	Markers []string

	// OpenFS returns the file system to walk for a search root.
	// Nil means os.DirFS.
	OpenFS func(searchRoot string) fs.FS

	// Skipped counts entries that could not be read during the last walk.
	Skipped int
}

// Discover walks the whole tree beneath searchRoot and returns every
// directory that directly contains a marker file. There is no depth limit
// and no ignore-file handling, so vendored and dependency crates are found
// too. Unreadable entries are logged and skipped; only a failure to read
// searchRoot itself is returned as an error.
//
// searchRoot should already be canonical; returned roots are searchRoot
// joined with the relative directory of each marker.
func (d *Discoverer) Discover(ctx context.Context, searchRoot string) (RootSet, error) {
	root, err := filepath.Abs(searchRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving search root %s: %w", searchRoot, err)
	}

	markers := d.markerSet()
	fsys := d.open(root)
	roots := NewRootSet()
	d.Skipped = 0

	err = fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if walkErr != nil {
			if p == "." {
				return walkErr
			}
			klog.Warningf("skipping %s: %v", filepath.Join(root, filepath.FromSlash(p)), walkErr)
			d.Skipped++
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if _, ok := markers[entry.Name()]; !ok {
			return nil
		}

		dir := filepath.Join(root, filepath.FromSlash(path.Dir(p)))
		klog.V(2).Infof("found project root %s", dir)
		roots.Add(dir)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	klog.V(1).Infof("discovered %d project root(s) under %s", roots.Len(), root)
	return roots, nil
}

func (d *Discoverer) markerSet() map[string]struct{} {
	names := d.Markers
	if len(names) == 0 {
		names = DefaultMarkers
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (d *Discoverer) open(root string) fs.FS {
	if d.OpenFS != nil {
		return d.OpenFS(root)
	}
	return os.DirFS(root)
}
