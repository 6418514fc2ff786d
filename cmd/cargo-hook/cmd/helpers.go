package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bianoble/cargo-hook/internal/config"
	"github.com/bianoble/cargo-hook/pkg/cargohook"
	"github.com/spf13/cobra"
)

// projectConfigPath returns the explicit --config-file, the nearest
// cargo-hook.yaml above the search root, or cargo-hook.yaml in the search
// root when neither exists.
func projectConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if p := config.FindProjectConfig(searchRoot); p != "" {
		return p
	}
	return filepath.Join(searchRoot, config.FileName)
}

// loadConfig reads, merges and validates every config layer.
func loadConfig() (*config.HierarchicalResult, error) {
	path := projectConfigPath()
	if configPath != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	hr, err := config.LoadHierarchical(config.HierarchicalOptions{
		ProjectPath: path,
		NoInherit:   noInherit || config.EnvNoInherit(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return hr, nil
}

// newClient creates a library client for the global flags and cfg.
func newClient(cmd *cobra.Command, cfg *config.Config) (*cargohook.Client, error) {
	configDir, err := filepath.Abs(filepath.Dir(projectConfigPath()))
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	return cargohook.New(cargohook.Options{
		SearchRoot:    searchRoot,
		Config:        cfg,
		ConfigDir:     configDir,
		Stdout:        cmd.OutOrStdout(),
		Stderr:        cmd.ErrOrStderr(),
		SkipPreflight: skipPreflight,
	})
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
