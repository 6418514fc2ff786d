package engine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bianoble/cargo-hook/internal/action"
	"github.com/bianoble/cargo-hook/internal/discover"
	"k8s.io/klog/v2"
)

// RunEngine runs one action against each affected root, one at a time.
type RunEngine struct {
	Runner action.Runner

	// Errors receives one line per failing root as soon as it fails.
	// Nil means os.Stderr.
	Errors io.Writer
}

// Run executes a once per root in roots and waits for each invocation
// before starting the next. A failing root never stops the loop; every
// failure is written to Errors immediately and counted in the report.
func (e *RunEngine) Run(ctx context.Context, roots discover.RootSet, a action.Action) *Report {
	report := &Report{Action: a.Name()}
	w := e.Errors
	if w == nil {
		w = os.Stderr
	}

	for _, root := range roots.Sorted() {
		err := e.Runner.Run(ctx, root, a)
		report.Outcomes = append(report.Outcomes, Outcome{Root: root, Err: err})
		if err != nil {
			report.Failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", root, err)
			continue
		}
		klog.V(1).Infof("%s ok in %s", a.Name(), root)
	}

	return report
}
