package engine

import (
	"fmt"

	"github.com/bianoble/cargo-hook/internal/discover"
	"github.com/bianoble/cargo-hook/internal/resolve"
)

// Outcome is the result of running an action against one project root.
// A nil Err is success; otherwise Err carries the failure reason.
type Outcome struct {
	Root string
	Err  error
}

// OK reports whether the action succeeded for this root.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Report aggregates the outcomes of a run.
type Report struct {
	Action   string
	Outcomes []Outcome
	Failed   int
}

// OK reports whether every root succeeded. An empty run is OK.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Err returns a *FailedError when at least one root failed, nil otherwise.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return &FailedError{Action: r.Action, Count: r.Failed}
}

// FailedError is the aggregate failure of a run.
type FailedError struct {
	Action string
	Count  int
}

func (e *FailedError) Error() string {
	if e.Count == 1 {
		return "1 check failed"
	}
	return fmt.Sprintf("%d checks failed", e.Count)
}

// Plan is the outcome of discovery and resolution for one invocation.
type Plan struct {
	SearchRoot string
	Roots      discover.RootSet
	Affected   discover.RootSet
	Decisions  []resolve.Decision
	Skipped    int // unreadable entries during discovery
}
