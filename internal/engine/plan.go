package engine

import (
	"context"

	"github.com/bianoble/cargo-hook/internal/discover"
	"github.com/bianoble/cargo-hook/internal/resolve"
)

// PlanEngine discovers project roots and resolves changed files onto them.
type PlanEngine struct {
	Discoverer *discover.Discoverer
	Resolver   *resolve.Resolver
}

// Plan walks searchRoot for project roots, then resolves changed against
// them. Discovery always finishes before resolution starts.
func (e *PlanEngine) Plan(ctx context.Context, searchRoot string, changed []string) (*Plan, error) {
	roots, err := e.Discoverer.Discover(ctx, searchRoot)
	if err != nil {
		return nil, err
	}

	decisions := e.Resolver.Explain(changed, roots)
	affected := discover.NewRootSet()
	for _, d := range decisions {
		if d.Reason == resolve.ReasonOwned {
			affected.Add(d.Root)
		}
	}

	return &Plan{
		SearchRoot: searchRoot,
		Roots:      roots,
		Affected:   affected,
		Decisions:  decisions,
		Skipped:    e.Discoverer.Skipped,
	}, nil
}
