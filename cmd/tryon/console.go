package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/unveels/tryon/internal/infrastructure/logging"
	"github.com/unveels/tryon/internal/tui"
)

type consoleOptions struct {
	NonInteractive bool
}

var (
	consoleProgramRunner = runConsoleProgram
	stdoutIsTerminal     = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

func newConsoleCmd(app *AppContext) *cobra.Command {
	opts := consoleOptions{}

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Browse categories and toggle selections interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.NonInteractive = opts.NonInteractive || !stdoutIsTerminal()
			ctx, logger := app.CommandContext(cmd, "command.console")
			err := runConsole(ctx, cmd, app, opts)
			if err != nil {
				logger.Error(ctx, "console command failed", "error", err)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.NonInteractive, "non-interactive", false, "Print the initial console frame and exit")

	return cmd
}

func runConsole(ctx context.Context, cmd *cobra.Command, app *AppContext, opts consoleOptions) error {
	products, err := app.Products("")
	if err != nil {
		return err
	}

	// The program owns the terminal; session logs are held and replayed after it exits.
	buffer := logging.NewEventBuffer(0)
	defer buffer.Flush(app.Logger)

	sess, err := app.NewSession(ctx, sessionConfig{
		Products: products,
		Logger:   logging.NewBufferedLogger(buffer),
		Strict:   app.Strict,
	})
	if err != nil {
		return err
	}
	defer sess.Close(ctx) //nolint:errcheck

	model := tui.NewModel(ctx, sess, buffer)

	if opts.NonInteractive {
		var state tea.Model = model
		if initCmd := model.Init(); initCmd != nil {
			state, _ = state.Update(initCmd())
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), state.View())
		return err
	}

	return consoleProgramRunner(ctx, model)
}

func runConsoleProgram(ctx context.Context, model tui.Model) error {
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
