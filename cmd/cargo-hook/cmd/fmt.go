package cmd

import (
	"github.com/bianoble/cargo-hook/internal/action"
	"github.com/bianoble/cargo-hook/internal/config"
	"github.com/spf13/cobra"
)

var (
	fmtConfig string
	fmtCheck  bool
)

var fmtCmd = &cobra.Command{
	Use:     "fmt [files...]",
	Aliases: action.Aliases("fmt"),
	Short:   "Run cargo fmt in every Cargo project touched by files",
	Long: `Runs 'cargo fmt' once in each Cargo project that contains one of the given
files. A project fails if rustfmt changed any file, so the commit can be
retried after reviewing the formatting.

--config is passed through to rustfmt unchanged, e.g.
  cargo-hook fmt --config max_width=100,hard_tabs=false src/lib.rs

With --check, rustfmt only reports files it would change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, args, func(cfg *config.Config) (action.Action, error) {
			a := action.Format{Config: cfg.Fmt.Config, Check: cfg.FmtCheck()}
			if cmd.Flags().Changed("config") {
				a.Config = fmtConfig
			}
			if cmd.Flags().Changed("check") {
				a.Check = fmtCheck
			}
			return a, nil
		})
	},
}

func init() {
	fmtCmd.Flags().StringVar(&fmtConfig, "config", "", "rustfmt configuration as key=value pairs, comma separated")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "report unformatted files without rewriting them")
	rootCmd.AddCommand(fmtCmd)
}
