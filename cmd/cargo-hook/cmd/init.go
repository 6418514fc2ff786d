package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bianoble/cargo-hook/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default cargo-hook.yaml scaffold. Every setting is
// shown with its built-in default.
const initTemplate = `# cargo-hook configuration
version: 1

# cargo executable, looked up on PATH
cargo: cargo

# oldest cargo release accepted before any project is checked
# min_version: 1.70.0

# file names that mark a Cargo project root
markers: [Cargo.toml]

# file names that belong to a project without being sources
lockfiles: [Cargo.lock]

# base-name patterns of source files; brace alternatives are supported
sources: ["*.rs"]

# dotenv file added to the environment of every cargo process
# env_file: .cargo-hook.env

fmt:
  # passed to rustfmt as --config
  # config: max_width=100,hard_tabs=false
  check: false

check:
  # features: serde,tokio
  all_features: false
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter cargo-hook.yaml configuration",
	Long: `Creates a cargo-hook.yaml file in the search root with every setting listed
at its default value.

Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := configPath
		if outPath == "" {
			outPath = filepath.Join(searchRoot, config.FileName)
		}
		abs, err := filepath.Abs(outPath)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		outPath = abs

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Adjust the file patterns and cargo settings")
		info("  2. Run 'cargo-hook roots' to list the Cargo projects found")
		info("  3. Add 'cargo-hook fmt', 'cargo-hook check' or 'cargo-hook clippy' to your pre-commit config")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
