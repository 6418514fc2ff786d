package cmd

import (
	"github.com/bianoble/cargo-hook/internal/action"
	"github.com/bianoble/cargo-hook/internal/config"
	"github.com/spf13/cobra"
)

// runAction loads the config, builds the action and runs it once per root
// affected by files. Failing roots are printed by the engine as they fail;
// the returned error carries the failure count.
func runAction(cmd *cobra.Command, files []string, build func(cfg *config.Config) (action.Action, error)) error {
	hr, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := hr.Config

	a, err := build(cfg)
	if err != nil {
		return err
	}

	client, err := newClient(cmd, cfg)
	if err != nil {
		return err
	}

	report, err := client.Run(cmd.Context(), files, a)
	if err != nil {
		return err
	}

	if len(report.Outcomes) == 0 {
		detail("no affected Cargo projects")
		return nil
	}
	for _, o := range report.Outcomes {
		if o.OK() {
			detail("ok    %s", o.Root)
		}
	}

	if !report.OK() {
		return report.Err()
	}
	info("%s: %d project(s) passed", action.Describe(cfg.Cargo, a), len(report.Outcomes))
	return nil
}
