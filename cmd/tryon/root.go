package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath   string
	productsPath string
	verbose      bool
	strict       bool
	logHuman     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &AppContext{}

	cmd := &cobra.Command{
		Use:           "tryon",
		Short:         "Coordinate virtual try-on selections into render channel state",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to the category rule table (defaults to the built-in table)")
	cmd.PersistentFlags().StringVarP(&flags.productsPath, "products", "p", "", "Path to a product fixture file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "Treat precondition violations as fatal")
	cmd.PersistentFlags().BoolVar(&flags.logHuman, "log-human", false, "Write human-readable logs instead of JSON")

	cmd.AddCommand(newReplayCmd(app))
	cmd.AddCommand(newConsoleCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newOptionsCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
