// Package action describes the cargo invocations run against a project root.
package action

import (
	"errors"
	"strings"
)

// Action is one external check run against a single project root.
type Action interface {
	// Name is the canonical action name: "fmt", "check" or "clippy".
	Name() string

	// Args are the cargo arguments, starting with the subcommand.
	Args() []string

	// FailureReason is the message reported when cargo exits non-zero.
	FailureReason() string
}

// Rewriter is implemented by actions that may rewrite files in place and
// list each rewritten path on stdout. A non-empty listing fails the root
// with ModifiedReason even when cargo exits 0.
type Rewriter interface {
	Action
	ModifiedReason() string
}

// Format runs rustfmt through cargo fmt.
type Format struct {
	// Config is a comma-separated list of key=value pairs passed verbatim
	// to rustfmt's --config flag. It is never parsed here.
	Config string

	// Check makes rustfmt report unformatted files instead of rewriting them.
	Check bool
}

func (Format) Name() string { return "fmt" }

// Args asks rustfmt to list every file it rewrites, since a rewrite exits 0.
// In check mode rustfmt exits non-zero on a diff and lists nothing.
func (f Format) Args() []string {
	args := []string{"fmt", "--"}
	if f.Check {
		args = append(args, "--check")
	} else {
		args = append(args, "--files-with-diff")
	}
	if f.Config != "" {
		args = append(args, "--config", f.Config)
	}
	return args
}

func (f Format) FailureReason() string {
	if f.Check {
		return "cargo fmt would modify files"
	}
	return "cargo fmt failed"
}

// ModifiedReason is the failure reported when rustfmt listed rewritten
// files. It is empty in check mode.
func (f Format) ModifiedReason() string {
	if f.Check {
		return ""
	}
	return "cargo fmt modified files"
}

// Check runs cargo check.
type Check struct {
	// Features is a comma-separated feature list passed to --features.
	Features string

	// AllFeatures activates every feature. It excludes Features.
	AllFeatures bool
}

// ErrFeatureConflict is returned when both a feature list and all features
// are requested.
var ErrFeatureConflict = errors.New("--features and --all-features are mutually exclusive")

func (Check) Name() string { return "check" }

func (c Check) Args() []string {
	args := []string{"check"}
	switch {
	case c.AllFeatures:
		args = append(args, "--all-features")
	case c.Features != "":
		args = append(args, "--features", c.Features)
	}
	return args
}

func (Check) FailureReason() string { return "cargo check failed" }

// Validate rejects a Check that asks for both a feature list and all features.
func (c Check) Validate() error {
	if c.AllFeatures && c.Features != "" {
		return ErrFeatureConflict
	}
	return nil
}

// Lint runs clippy with every warning promoted to an error.
type Lint struct{}

func (Lint) Name() string { return "clippy" }

func (Lint) Args() []string { return []string{"clippy", "--", "-D", "warnings"} }

func (Lint) FailureReason() string { return "cargo clippy failed" }

// Describe renders the command line for a, for logs and dry runs.
func Describe(cargo string, a Action) string {
	return cargo + " " + strings.Join(a.Args(), " ")
}
