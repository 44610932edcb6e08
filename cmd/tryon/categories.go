package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unveels/tryon/internal/domain/selection"
)

// categoryInfo is the printable form of one rule table entry.
type categoryInfo struct {
	ID          string   `yaml:"id" json:"id"`
	Label       string   `yaml:"label" json:"label"`
	Channels    []string `yaml:"channels" json:"channels"`
	Modes       []string `yaml:"modes" json:"modes"`
	DefaultMode string   `yaml:"default_mode" json:"default_mode"`
	Rows        []string `yaml:"rows" json:"rows"`
	Visibility  bool     `yaml:"visibility" json:"visibility"`
}

func newCategoriesCmd(app *AppContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories of the rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			ctx, logger := app.CommandContext(cmd, "command.categories")
			err := runCategories(ctx, cmd, app, format)
			if err != nil {
				logger.Error(ctx, "categories command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: yaml, json or table")

	return cmd
}

func runCategories(ctx context.Context, cmd *cobra.Command, app *AppContext, format string) error {
	rules, err := app.Rules(ctx)
	if err != nil {
		return err
	}

	infos := make([]categoryInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, describeCategory(r))
	}

	if format != formatTable {
		data, err := encode(format, infos)
		if err != nil {
			return err
		}
		return write(cmd.OutOrStdout(), data)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-12s %-12s %-16s %-16s %s\n", "ID", "LABEL", "CHANNELS", "MODES", "ROWS")
	for _, info := range infos {
		fmt.Fprintf(out, "%-12s %-12s %-16s %-16s %s\n",
			info.ID, info.Label, strings.Join(info.Channels, ","), strings.Join(info.Modes, ","), strings.Join(info.Rows, ","))
	}
	return nil
}

func describeCategory(r selection.Rules) categoryInfo {
	info := categoryInfo{
		ID:          string(r.Category),
		Label:       r.Label,
		Channels:    r.Channels,
		DefaultMode: string(r.DefaultMode),
		Visibility:  r.Visibility,
	}
	for _, m := range r.ModeNames() {
		info.Modes = append(info.Modes, string(m))
	}

	opt := r.Options
	if opt.Colors != "" {
		info.Rows = append(info.Rows, "colors")
	}
	if opt.Textures != "" {
		info.Rows = append(info.Rows, "textures")
	}
	if opt.Fabrics != "" {
		info.Rows = append(info.Rows, "fabrics")
	}
	if opt.Shapes > 0 {
		info.Rows = append(info.Rows, fmt.Sprintf("shapes(%d)", opt.Shapes))
	}
	if opt.Patterns > 0 {
		info.Rows = append(info.Rows, fmt.Sprintf("patterns(%d)", opt.Patterns))
	}
	if opt.Family != "" {
		info.Rows = append(info.Rows, "family")
	}
	return info
}
