package cmd

import (
	"github.com/bianoble/cargo-hook/internal/action"
	"github.com/bianoble/cargo-hook/internal/config"
	"github.com/spf13/cobra"
)

var (
	checkFeatures    string
	checkAllFeatures bool
)

var checkCmd = &cobra.Command{
	Use:     "check [files...]",
	Aliases: action.Aliases("check"),
	Short:   "Run cargo check in every Cargo project touched by files",
	Long: `Runs 'cargo check' once in each Cargo project that contains one of the given
files. Use --features to enable a comma separated list of features, or
--all-features to enable every feature. The two flags cannot be combined.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, args, func(cfg *config.Config) (action.Action, error) {
			a := action.Check{Features: cfg.Check.Features, AllFeatures: cfg.AllFeatures()}
			if cmd.Flags().Changed("features") || cmd.Flags().Changed("all-features") {
				a = action.Check{Features: checkFeatures, AllFeatures: checkAllFeatures}
			}
			if err := a.Validate(); err != nil {
				return nil, err
			}
			return a, nil
		})
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkFeatures, "features", "", "comma separated list of features to activate")
	checkCmd.Flags().BoolVar(&checkAllFeatures, "all-features", false, "activate all available features")
	checkCmd.MarkFlagsMutuallyExclusive("features", "all-features")
	rootCmd.AddCommand(checkCmd)
}
