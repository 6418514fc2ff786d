// Package resolve maps changed files onto the project roots that own them.
package resolve

import (
	"github.com/bianoble/cargo-hook/internal/discover"
	"github.com/bianoble/cargo-hook/internal/paths"
	"k8s.io/klog/v2"
)

// Reason explains what happened to a single changed file.
type Reason string

// Reasons reported in a Decision.
const (
	ReasonOwned    Reason = "owned"    // assigned to its deepest enclosing root
	ReasonFiltered Reason = "filtered" // not a source, manifest or lock file
	ReasonUnowned  Reason = "unowned"  // relevant but under no root
)

// Decision records how one changed file was resolved.
type Decision struct {
	File      string // as supplied by the caller
	Canonical string // empty when filtered
	Root      string // empty unless Reason is ReasonOwned
	Reason    Reason
}

// Resolver assigns relevant changed files to their deepest enclosing root.
type Resolver struct {
	Filter Filter
	Paths  *paths.Canonicalizer
}

// New creates a Resolver. Relative changed paths are anchored at the base
// directory of c.
func New(filter Filter, c *paths.Canonicalizer) *Resolver {
	return &Resolver{Filter: filter, Paths: c}
}

// Resolve returns the set of roots owning at least one relevant changed
// file. Files that are filtered out or have no enclosing root are skipped
// silently. The result is always a subset of roots.
func (r *Resolver) Resolve(changed []string, roots discover.RootSet) discover.RootSet {
	affected := discover.NewRootSet()
	for _, d := range r.Explain(changed, roots) {
		if d.Reason == ReasonOwned {
			affected.Add(d.Root)
		}
	}
	return affected
}

// Explain resolves each changed file and reports the decision per file, in
// input order.
func (r *Resolver) Explain(changed []string, roots discover.RootSet) []Decision {
	decisions := make([]Decision, 0, len(changed))
	for _, file := range changed {
		d := Decision{File: file}
		if !r.Filter.Relevant(file) {
			d.Reason = ReasonFiltered
			klog.V(2).Infof("ignoring %s: not a source or manifest file", file)
			decisions = append(decisions, d)
			continue
		}

		d.Canonical = r.Paths.Canonical(file)
		d.Root = Owner(d.Canonical, roots)
		if d.Root == "" {
			d.Reason = ReasonUnowned
			klog.V(2).Infof("ignoring %s: no enclosing project root", file)
		} else {
			d.Reason = ReasonOwned
		}
		decisions = append(decisions, d)
	}
	return decisions
}

// Owner returns the deepest root that contains file, or "" if none does.
// file and roots must be canonical.
func Owner(file string, roots discover.RootSet) string {
	best := ""
	bestDepth := -1
	for root := range roots {
		if !paths.Contains(root, file) {
			continue
		}
		depth := paths.Depth(root)
		if depth > bestDepth {
			best = root
			bestDepth = depth
		}
	}
	return best
}
