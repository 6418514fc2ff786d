package cmd

import (
	"github.com/bianoble/cargo-hook/internal/action"
	"github.com/bianoble/cargo-hook/internal/config"
	"github.com/spf13/cobra"
)

var clippyCmd = &cobra.Command{
	Use:     "clippy [files...]",
	Aliases: action.Aliases("clippy"),
	Short:   "Run cargo clippy in every Cargo project touched by files",
	Long: `Runs 'cargo clippy -- -D warnings' once in each Cargo project that contains
one of the given files. Any lint warning fails the project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, args, func(*config.Config) (action.Action, error) {
			return action.Lint{}, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(clippyCmd)
}
