// Package cargohook provides the public Go library API for cargo-hook.
//
// cargo-hook is a pre-commit hook runner for repositories holding several
// independent Cargo projects. Given the files of a pending change it finds
// every project root in the tree, maps each changed Rust source, manifest
// or lock file to its nearest enclosing root, and runs cargo fmt, cargo
// check or cargo clippy once per affected root.
//
// # Basic Usage
//
//	client, err := cargohook.New(cargohook.Options{SearchRoot: "/path/to/repo"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := client.Run(ctx, changedFiles, cargohook.Lint{})
//	if err != nil {
//	    log.Fatal(err) // pre-flight or discovery failure
//	}
//	if !report.OK() {
//	    log.Fatal(report.Err())
//	}
package cargohook

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bianoble/cargo-hook/internal/action"
	"github.com/bianoble/cargo-hook/internal/config"
	"github.com/bianoble/cargo-hook/internal/discover"
	"github.com/bianoble/cargo-hook/internal/engine"
	"github.com/bianoble/cargo-hook/internal/paths"
	"github.com/bianoble/cargo-hook/internal/resolve"
	"github.com/bianoble/cargo-hook/internal/toolchain"
)

// Options configures a cargo-hook client.
type Options struct {
	// SearchRoot is the directory walked for project roots.
	// Default: the current working directory.
	SearchRoot string

	// BaseDir anchors relative changed-file paths.
	// Default: the current working directory.
	BaseDir string

	// Config holds the settings. Nil means DefaultConfig().
	Config *Config

	// ConfigDir anchors a relative Config.EnvFile. Default: SearchRoot.
	ConfigDir string

	// Runner executes actions. Nil means a process runner for Config.Cargo
	// that writes to Stdout and Stderr.
	Runner Runner

	// Stdout and Stderr receive cargo output and failure lines.
	// Nil means os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// SkipPreflight disables the toolchain checks in Run.
	SkipPreflight bool
}

// Client is the main entry point for the cargo-hook library.
type Client struct {
	cfg           *config.Config
	searchRoot    string
	planner       *engine.PlanEngine
	runner        *engine.RunEngine
	checker       *toolchain.Checker
	skipPreflight bool
}

// New creates a Client. The search root must exist.
func New(opts Options) (*Client, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	if opts.SearchRoot == "" {
		opts.SearchRoot = cwd
	}
	if opts.BaseDir == "" {
		opts.BaseDir = cwd
	}
	if opts.ConfigDir == "" {
		opts.ConfigDir = opts.SearchRoot
	}

	searchRoot, err := paths.Resolve(opts.SearchRoot)
	if err != nil {
		return nil, fmt.Errorf("search root: %w", err)
	}

	canon, err := paths.New(opts.BaseDir, paths.DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("base directory: %w", err)
	}

	filter := resolve.Filter{Patterns: cfg.Sources, Names: cfg.RelevantNames()}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	runner := opts.Runner
	if runner == nil {
		r := &action.ExecRunner{Cargo: cfg.Cargo, Stdout: opts.Stdout, Stderr: opts.Stderr}
		if cfg.EnvFile != "" {
			envPath := cfg.EnvFile
			if !filepath.IsAbs(envPath) {
				envPath = filepath.Join(opts.ConfigDir, envPath)
			}
			env, err := action.LoadEnvFile(envPath)
			if err != nil {
				return nil, err
			}
			r.Env = env
		}
		runner = r
	}

	return &Client{
		cfg:        cfg,
		searchRoot: searchRoot,
		planner: &engine.PlanEngine{
			Discoverer: &discover.Discoverer{Markers: cfg.Markers},
			Resolver:   resolve.New(filter, canon),
		},
		runner: &engine.RunEngine{Runner: runner, Errors: opts.Stderr},
		checker: &toolchain.Checker{
			Cargo:      cfg.Cargo,
			MinVersion: cfg.MinVersion,
		},
		skipPreflight: opts.SkipPreflight,
	}, nil
}

// SearchRoot returns the canonical directory walked for project roots.
func (c *Client) SearchRoot() string {
	return c.searchRoot
}

// Config returns the effective configuration.
func (c *Client) Config() *Config {
	return c.cfg
}

// Preflight checks that cargo is installed, new enough and, for a non-nil
// a, that the subcommand a needs is available.
func (c *Client) Preflight(ctx context.Context, a Action) (*ToolchainInfo, error) {
	return c.checker.Check(ctx, a)
}

// Plan discovers project roots and resolves changed onto them without
// running anything.
func (c *Client) Plan(ctx context.Context, changed []string) (*Plan, error) {
	return c.planner.Plan(ctx, c.searchRoot, changed)
}

// Run checks the toolchain, resolves changed onto project roots and runs a
// once per affected root. The returned error covers pre-flight and
// discovery failures only; per-root failures are in the Report.
func (c *Client) Run(ctx context.Context, changed []string, a Action) (*Report, error) {
	if !c.skipPreflight {
		if _, err := c.Preflight(ctx, a); err != nil {
			return nil, err
		}
	}

	plan, err := c.Plan(ctx, changed)
	if err != nil {
		return nil, err
	}

	return c.runner.Run(ctx, plan.Affected, a), nil
}

// RunNamed is Run with the action chosen by name ("fmt", "check", "clippy"
// or an alias) and configured from the client's Config.
func (c *Client) RunNamed(ctx context.Context, name string, changed []string) (*Report, error) {
	a, err := c.ActionFromConfig(name)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, changed, a)
}

// ActionFromConfig builds the named action using the defaults in Config.
func (c *Client) ActionFromConfig(name string) (Action, error) {
	return action.New(name, action.Options{
		FmtConfig:   c.cfg.Fmt.Config,
		FmtCheck:    c.cfg.FmtCheck(),
		Features:    c.cfg.Check.Features,
		AllFeatures: c.cfg.AllFeatures(),
	})
}
