package cmd

import (
	"fmt"
	"strings"

	"github.com/bianoble/cargo-hook/internal/action"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about cargo-hook configuration and the cargo toolchain",
	Long: `Displays the cargo-hook version, the config chain, the effective file
patterns, the cargo toolchain found on PATH and the command line each
action runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := hr.Config

		fmt.Printf("cargo-hook %s\n", version)
		fmt.Println("  config chain:")
		for _, layer := range hr.Layers {
			status := "not found"
			if layer.Loaded {
				status = "loaded"
			}
			fmt.Printf("    %-10s %s (%s)\n", string(layer.Level)+":", layer.Path, status)
		}

		fmt.Printf("  search root:   %s\n", searchRoot)
		fmt.Printf("  markers:       %s\n", strings.Join(cfg.Markers, ", "))
		fmt.Printf("  lockfiles:     %s\n", strings.Join(cfg.Lockfiles, ", "))
		fmt.Printf("  sources:       %s\n", strings.Join(cfg.Sources, ", "))
		if cfg.EnvFile != "" {
			fmt.Printf("  env file:      %s\n", cfg.EnvFile)
		}

		client, err := newClient(cmd, cfg)
		if err != nil {
			return err
		}
		tc, err := client.Preflight(cmd.Context(), nil)
		if err != nil {
			errorf("%v", err)
		} else {
			fmt.Printf("  cargo:         %s (%s)\n", tc.Path, versionOrUnknown(tc.Version))
		}
		if cfg.MinVersion != "" {
			fmt.Printf("  min version:   %s\n", cfg.MinVersion)
		}

		fmt.Println("\nActions:")
		for _, name := range action.Known() {
			a, err := client.ActionFromConfig(name)
			if err != nil {
				return err
			}
			aliases := ""
			if al := action.Aliases(name); len(al) > 0 {
				aliases = " (" + strings.Join(al, ", ") + ")"
			}
			fmt.Printf("  %-8s → %s%s\n", name, action.Describe(cfg.Cargo, a), aliases)
		}

		return nil
	},
}

func versionOrUnknown(v string) string {
	if v == "" {
		return "unknown version"
	}
	return v
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
