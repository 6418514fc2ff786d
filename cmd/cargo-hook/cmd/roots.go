package cmd

import (
	"fmt"

	"github.com/bianoble/cargo-hook/internal/resolve"
	"github.com/spf13/cobra"
)

var rootsCmd = &cobra.Command{
	Use:   "roots [files...]",
	Short: "List Cargo projects, or the projects affected by files",
	Long: `Without arguments, lists every Cargo project found under the search root.
With files, lists only the projects those files affect, which is the set a
hook command would run in. --verbose shows what happened to each file.
Nothing is executed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hr, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cmd, hr.Config)
		if err != nil {
			return err
		}

		plan, err := client.Plan(cmd.Context(), args)
		if err != nil {
			return err
		}
		if plan.Skipped > 0 {
			info("warning: skipped %d unreadable entries under %s", plan.Skipped, plan.SearchRoot)
		}

		roots := plan.Roots
		if len(args) > 0 {
			roots = plan.Affected
			for _, d := range plan.Decisions {
				switch d.Reason {
				case resolve.ReasonOwned:
					detail("%-9s %s -> %s", d.Reason, d.File, d.Root)
				default:
					detail("%-9s %s", d.Reason, d.File)
				}
			}
		}

		for _, r := range roots.Sorted() {
			fmt.Println(r)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rootsCmd)
}
