package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unveels/tryon/internal/application/scenario"
	"github.com/unveels/tryon/internal/domain/render"
	"github.com/unveels/tryon/internal/infrastructure/renderengine"
	"github.com/unveels/tryon/pkg/diff"
)

type replayOptions struct {
	format   string
	commands bool
	golden   string
	update   bool
}

// replayOutput is the document printed after a replay.
type replayOutput struct {
	scenario.Report `yaml:",inline"`
	Frames          []renderengine.Frame `yaml:"frames,omitempty" json:"frames,omitempty"`
}

func newReplayCmd(app *AppContext) *cobra.Command {
	opts := &replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <scenario-file>",
		Short: "Replay a scenario of UI actions and print the resulting render state",
		Long: `Replay dispatches every action of a scenario file against a fresh session,
checks its expect steps, and prints the final store and channel snapshot.
With --golden the printed document is compared against a golden file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			ctx, logger := app.CommandContext(cmd, "command.replay")
			logger.Info(ctx, "replaying scenario", "scenario_path", args[0])
			err := runReplay(ctx, cmd, app, args[0], opts)
			if err != nil {
				logger.Error(ctx, "replay command failed", "scenario_path", args[0], "error", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatYAML, "Output format: yaml, json or table")
	cmd.Flags().BoolVar(&opts.commands, "commands", false, "Include every pushed render command, grouped by frame")
	cmd.Flags().StringVar(&opts.golden, "golden", "", "Compare the output against this golden file")
	cmd.Flags().BoolVar(&opts.update, "update", false, "Rewrite the golden file instead of comparing")

	return cmd
}

func runReplay(ctx context.Context, cmd *cobra.Command, app *AppContext, path string, opts *replayOptions) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	products, err := app.Products(sc.ProductsPath())
	if err != nil {
		return err
	}

	recorder := renderengine.NewRecorder()
	_, logger := app.CommandContext(cmd, "command.replay")
	engines := []render.Engine{recorder, renderengine.NewLogEngine(ctx, logger)}
	sess, err := app.NewSession(ctx, sessionConfig{
		Products: products,
		Engines:  engines,
		Strict:   app.Strict || sc.Strict,
	})
	if err != nil {
		return err
	}
	defer sess.Close(ctx) //nolint:errcheck

	report, runErr := scenario.NewRunner(logger).Run(ctx, sc, sess)

	out := replayOutput{Report: report}
	if opts.commands {
		out.Frames = recorder.Frames()
	}

	var rendered []byte
	if opts.format == formatTable {
		rendered = []byte(renderReplayTable(out))
	} else {
		rendered, err = encode(opts.format, out)
		if err != nil {
			return err
		}
	}

	if err := write(cmd.OutOrStdout(), rendered); err != nil {
		return err
	}

	if opts.golden != "" {
		if err := compareGolden(opts.golden, rendered, opts.update); err != nil {
			return errors.Join(runErr, err)
		}
	}
	if runErr != nil {
		return fmt.Errorf("scenario %q: %w", sc.Name, runErr)
	}
	return nil
}

func compareGolden(path string, actual []byte, update bool) error {
	if update {
		if err := os.WriteFile(path, actual, 0o644); err != nil {
			return fmt.Errorf("write golden file: %w", err)
		}
		return nil
	}
	expected, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read golden file: %w", err)
	}
	if d := diff.GenerateUnifiedDiff(expected, actual, path, "replay"); d != "" {
		return fmt.Errorf("output differs from golden file:\n%s", d)
	}
	return nil
}

func renderReplayTable(out replayOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scenario: %s\n", out.Name)
	for _, step := range out.Steps {
		status := ""
		switch {
		case step.Violation != "":
			status = "violation: " + step.Violation
		case len(step.Failures) > 0:
			status = "FAIL: " + strings.Join(step.Failures, "; ")
		case step.Step == "expect":
			status = fmt.Sprintf("ok (%d checks)", step.Checks)
		case len(step.Evicted) > 0:
			status = fmt.Sprintf("%d commands, evicted %s", step.Commands, strings.Join(step.Evicted, ","))
		default:
			status = fmt.Sprintf("%d commands", step.Commands)
		}
		fmt.Fprintf(&b, "  %3d  %-32s %s\n", step.Index, step.Step, status)
	}
	fmt.Fprintf(&b, "Checks: %d, failed: %d\n", out.Checks, out.Failed)

	if out.Store != nil {
		fmt.Fprintf(&b, "\nMounted: %s (%s)\n", out.Mounted, out.Store.ShadeMode)
		fmt.Fprintf(&b, "  colors: %s\n", strings.Join(out.Store.Colors, ","))
		for _, field := range [][2]string{
			{"texture", out.Store.Texture},
			{"fabric", out.Store.Fabric},
			{"shape", out.Store.Shape},
			{"pattern", out.Store.Pattern},
			{"color_family", out.Store.ColorFamily},
		} {
			if field[1] != "" {
				fmt.Fprintf(&b, "  %s: %s\n", field[0], field[1])
			}
		}
	}

	b.WriteString("\nChannels:\n")
	for _, name := range out.Channels.Names() {
		ch := out.Channels[name]
		fmt.Fprintf(&b, "  %-12s visible=%-5t material=%-3s pattern=%-3s mode=%-6s colors=%s\n",
			name, ch.Visible, indexLabel(ch.Material), indexLabel(ch.Pattern), dash(ch.Mode), strings.Join(ch.Colors, ","))
	}

	if len(out.Frames) > 0 {
		b.WriteString("\nFrames:\n")
		for i, frame := range out.Frames {
			var cmds bytes.Buffer
			for j, c := range frame.Commands {
				if j > 0 {
					cmds.WriteString("; ")
				}
				cmds.WriteString(c.String())
			}
			fmt.Fprintf(&b, "  %3d  %-10s %s\n", i, frame.Owner, cmds.String())
		}
	}
	return b.String()
}

func indexLabel(i int) string {
	if i == render.NoIndex {
		return "-"
	}
	return fmt.Sprintf("%d", i)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
