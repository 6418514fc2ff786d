// Package toolchain verifies that a usable cargo is installed before any
// project root is touched.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/bianoble/cargo-hook/internal/action"
	"golang.org/x/mod/semver"
	"k8s.io/klog/v2"
)

// ErrCargoNotFound means the cargo executable is not on PATH.
var ErrCargoNotFound = errors.New("cargo not found on PATH, install Rust from https://rustup.rs")

// VersionError reports a cargo that is too old or whose version could not
// be read.
type VersionError struct {
	Have   string // empty when the version output could not be parsed
	Want   string
	Output string
}

func (e *VersionError) Error() string {
	if e.Have == "" {
		return fmt.Sprintf("could not determine cargo version from %q", strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("cargo %s is too old, %s or newer is required, run 'rustup update'", e.Have, e.Want)
}

// SubcommandError reports a cargo subcommand that is not installed.
type SubcommandError struct {
	Subcommand string
	Component  string
	Err        error
}

func (e *SubcommandError) Error() string {
	return fmt.Sprintf("cargo %s is not available: %v, run 'rustup component add %s'", e.Subcommand, e.Err, e.Component)
}

func (e *SubcommandError) Unwrap() error {
	return e.Err
}

// components maps actions needing an optional rustup component to it.
var components = map[string]string{
	"fmt":    "rustfmt",
	"clippy": "clippy",
}

// Info describes the cargo found by a successful Check.
type Info struct {
	Path    string
	Version string
}

// Checker runs the pre-flight checks.
type Checker struct {
	// Cargo is the executable name or path. Empty means "cargo".
	Cargo string

	// MinVersion is the minimum accepted cargo version, e.g. "1.70.0".
	// Empty disables the version check.
	MinVersion string

	// LookPath and Output default to exec.LookPath and running the command
	// and collecting combined output.
	LookPath func(file string) (string, error)
	Output   func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Check verifies that cargo exists, meets MinVersion and, if a needs an
// optional subcommand, that the subcommand is installed.
func (c *Checker) Check(ctx context.Context, a action.Action) (*Info, error) {
	path, err := c.lookPath(c.cargo())
	if err != nil {
		klog.V(1).Infof("looking up %s: %v", c.cargo(), err)
		return nil, ErrCargoNotFound
	}

	out, err := c.output(ctx, path, "--version")
	if err != nil {
		return nil, fmt.Errorf("running %s --version: %w", path, err)
	}

	have := ParseVersion(string(out))
	switch {
	case have == "" && c.MinVersion != "":
		return nil, &VersionError{Want: c.MinVersion, Output: string(out)}
	case have == "":
		klog.Warningf("could not parse cargo version from %q", strings.TrimSpace(string(out)))
	case c.MinVersion != "" && Compare(have, c.MinVersion) < 0:
		return nil, &VersionError{Have: have, Want: c.MinVersion, Output: string(out)}
	}

	if a != nil {
		if component, ok := components[a.Name()]; ok {
			if _, err := c.output(ctx, path, a.Name(), "--version"); err != nil {
				return nil, &SubcommandError{Subcommand: a.Name(), Component: component, Err: err}
			}
		}
	}

	klog.V(1).Infof("using %s (cargo %s)", path, have)
	return &Info{Path: path, Version: have}, nil
}

func (c *Checker) cargo() string {
	if c.Cargo == "" {
		return "cargo"
	}
	return c.Cargo
}

func (c *Checker) lookPath(file string) (string, error) {
	if c.LookPath != nil {
		return c.LookPath(file)
	}
	return exec.LookPath(file)
}

func (c *Checker) output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if c.Output != nil {
		return c.Output(ctx, name, args...)
	}
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

var versionPattern = regexp.MustCompile(`\b(\d+)\.(\d+)\.(\d+)\b`)

// ParseVersion extracts "X.Y.Z" from `cargo --version` output such as
// "cargo 1.75.0 (1d8b05cdd 2023-11-20)" or "cargo 1.77.0-nightly (...)".
// It returns "" when no version is present.
func ParseVersion(output string) string {
	return versionPattern.FindString(output)
}

// ValidVersion reports whether v is an accepted minimum version string.
func ValidVersion(v string) bool {
	return semver.IsValid("v" + v)
}

// Compare compares two dotted versions with semver ordering, returning
// -1, 0 or +1.
func Compare(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}
