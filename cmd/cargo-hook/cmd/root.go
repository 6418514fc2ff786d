package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath    string
	searchRoot    string
	verbose       bool
	quiet         bool
	skipPreflight bool
	noInherit     bool
)

var rootCmd = &cobra.Command{
	Use:   "cargo-hook",
	Short: "Run cargo checks on the Cargo projects touched by a change",
	Long: `cargo-hook is a pre-commit hook runner for repositories that hold several
independent Cargo projects. It finds every directory containing a Cargo.toml,
maps each changed .rs, Cargo.toml and Cargo.lock file to its nearest enclosing
project, and runs cargo fmt, cargo check or cargo clippy once per affected
project. Every project is checked even after a failure; the command exits
non-zero if any of them failed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cargo-hook %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-file", "", "path to project config file (default: nearest cargo-hook.yaml)")
	rootCmd.PersistentFlags().StringVar(&searchRoot, "root", ".", "directory searched for Cargo projects")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&skipPreflight, "skip-preflight", false, "do not check the cargo toolchain before running")
	rootCmd.PersistentFlags().BoolVar(&noInherit, "no-inherit", false, "ignore system and user config files")

	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	defer klog.Flush()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
