package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unveels/tryon/internal/application/scenario"
	"github.com/unveels/tryon/internal/config"
)

func newValidateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [scenario-file...]",
		Short: "Validate the rule table and, optionally, scenario files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.validate")
			out := cmd.OutOrStdout()

			if app.ConfigPath == "" {
				fmt.Fprintln(out, "✓ built-in rule table")
			} else {
				if err := app.Loader.Validate(ctx, app.ConfigPath); err != nil {
					logger.Error(ctx, "rule table invalid", "config_path", app.ConfigPath, "error", err)
					return describeInvalid(app.ConfigPath, err)
				}
				fmt.Fprintf(out, "✓ %s\n", app.ConfigPath)
			}

			for _, path := range args {
				if _, err := scenario.Load(path); err != nil {
					logger.Error(ctx, "scenario invalid", "scenario_path", path, "error", err)
					return describeInvalid(path, err)
				}
				fmt.Fprintf(out, "✓ %s\n", path)
			}
			return nil
		},
	}
	return cmd
}

func describeInvalid(path string, err error) error {
	if line := config.ExtractLine(err); line > 0 {
		return fmt.Errorf("%s:%d: %w", path, line, err)
	}
	return fmt.Errorf("%s: %w", path, err)
}
