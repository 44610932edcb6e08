package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/domain/selection"
	apperrors "github.com/unveels/tryon/pkg/errors"
)

// optionsView lists what the UI may send for one mounted product.
type optionsView struct {
	Category string           `yaml:"category" json:"category"`
	Product  string           `yaml:"product" json:"product"`
	Family   string           `yaml:"family,omitempty" json:"family,omitempty"`
	Colors   []string         `yaml:"colors,omitempty" json:"colors,omitempty"`
	Textures []catalog.Option `yaml:"textures,omitempty" json:"textures,omitempty"`
	Fabrics  []catalog.Option `yaml:"fabrics,omitempty" json:"fabrics,omitempty"`
	Shapes   []catalog.Option `yaml:"shapes,omitempty" json:"shapes,omitempty"`
	Patterns []catalog.Option `yaml:"patterns,omitempty" json:"patterns,omitempty"`
	Rejected []string         `yaml:"rejected,omitempty" json:"rejected,omitempty"`
}

func newOptionsCmd(app *AppContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options <category> [sku]",
		Short: "Show the options a product presents in a category",
		Long: `Options extracts the attribute tokens of a product the way a mounted
category does. Without a SKU the category's first product is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			sku := ""
			if len(args) > 1 {
				sku = args[1]
			}
			ctx, logger := app.CommandContext(cmd, "command.options")
			err := runOptions(ctx, cmd, app, args[0], sku, format)
			if err != nil {
				logger.Error(ctx, "options command failed", "category", args[0], "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: yaml, json or table")

	return cmd
}

func runOptions(ctx context.Context, cmd *cobra.Command, app *AppContext, category, sku, format string) error {
	rules, err := app.Rules(ctx)
	if err != nil {
		return err
	}
	var r *selection.Rules
	for i := range rules {
		if string(rules[i].Category) == category {
			r = &rules[i]
		}
	}
	if r == nil {
		return apperrors.NewNotFoundError("category", category)
	}

	products, err := app.Products("")
	if err != nil {
		return err
	}
	if products == nil {
		return errors.New("a product fixture is required (--products)")
	}
	product, err := products.Product(ctx, category, sku)
	if err != nil {
		return err
	}

	opts, rejected := catalog.BuildOptions(product, r.Options)
	view := optionsView{
		Category: category,
		Product:  product.SKU,
		Family:   opts.Family,
		Colors:   opts.Colors,
		Textures: opts.Textures,
		Fabrics:  opts.Fabrics,
		Shapes:   opts.Shapes,
		Patterns: opts.Patterns,
	}
	for _, rej := range rejected {
		view.Rejected = append(view.Rejected, fmt.Sprintf("%s:%s", rej.Kind, rej.Token))
	}

	if format != formatTable {
		data, err := encode(format, view)
		if err != nil {
			return err
		}
		return write(cmd.OutOrStdout(), data)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s / %s\n", view.Category, view.Product)
	row := func(label string, values []string) {
		if len(values) > 0 {
			fmt.Fprintf(out, "  %-9s %s\n", label+":", strings.Join(values, ", "))
		}
	}
	if view.Family != "" {
		row("family", []string{view.Family})
	}
	row("colors", view.Colors)
	row("textures", optionValues(view.Textures))
	row("fabrics", optionValues(view.Fabrics))
	row("shapes", optionValues(view.Shapes))
	row("patterns", optionValues(view.Patterns))
	row("rejected", view.Rejected)
	return nil
}

func optionValues(options []catalog.Option) []string {
	values := make([]string, 0, len(options))
	for _, o := range options {
		values = append(values, o.Value)
	}
	return values
}
