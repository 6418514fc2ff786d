package cargohook

import (
	"github.com/bianoble/cargo-hook/internal/action"
	"github.com/bianoble/cargo-hook/internal/config"
	"github.com/bianoble/cargo-hook/internal/engine"
	"github.com/bianoble/cargo-hook/internal/resolve"
	"github.com/bianoble/cargo-hook/internal/toolchain"
)

// Type aliases re-export the internal types that make up the public API.

type Config = config.Config
type FmtConfig = config.FmtConfig
type CheckConfig = config.CheckConfig

type Action = action.Action
type Format = action.Format
type Check = action.Check
type Lint = action.Lint
type Runner = action.Runner
type RunnerFunc = action.RunnerFunc

type Plan = engine.Plan
type Report = engine.Report
type Outcome = engine.Outcome
type FailedError = engine.FailedError
type Decision = resolve.Decision

type ToolchainInfo = toolchain.Info
type VersionError = toolchain.VersionError
type SubcommandError = toolchain.SubcommandError

// ErrCargoNotFound is returned by Preflight when cargo is not installed.
var ErrCargoNotFound = toolchain.ErrCargoNotFound

// DefaultConfig returns the built-in configuration for Cargo projects.
func DefaultConfig() *Config {
	return config.Defaults()
}
