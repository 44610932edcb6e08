package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unveels/tryon/internal/tui"
)

func TestConsoleNonInteractivePrintsFirstFrame(t *testing.T) {
	stdout, _, err := execute(t, "--products", exampleProducts, "console", "--non-interactive")
	require.NoError(t, err)
	require.Contains(t, stdout, "Try-on console • Blush")
	require.Contains(t, stdout, "Channels")
	require.Contains(t, stdout, "mount blush")
}

func TestConsoleFlushesBufferedLogs(t *testing.T) {
	_, stderr, err := execute(t, "--products", exampleProducts, "console", "--non-interactive")
	require.NoError(t, err)
	require.Contains(t, stderr, "category mounted")
}

func TestConsoleInteractiveUsesProgramRunner(t *testing.T) {
	originalRunner, originalTerminal := consoleProgramRunner, stdoutIsTerminal
	t.Cleanup(func() {
		consoleProgramRunner = originalRunner
		stdoutIsTerminal = originalTerminal
	})

	var started tui.Model
	called := false
	stdoutIsTerminal = func() bool { return true }
	consoleProgramRunner = func(ctx context.Context, model tui.Model) error {
		called = true
		started = model
		return nil
	}

	stdout, _, err := execute(t, "--products", exampleProducts, "console")
	require.NoError(t, err)
	require.True(t, called)
	require.Empty(t, stdout)
	require.NotNil(t, started.Init())
}
