package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	exampleConfig   = "../../examples/tryon.yaml"
	exampleProducts = "../../examples/products.yaml"
	blushSingle     = "../../examples/scenarios/blush-single.yaml"
)

// execute runs the root command and returns stdout and stderr separately.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, name := range []string{"TRYON_CONFIG", "TRYON_LOG_LEVEL", "TRYON_LOG_HUMAN", "TRYON_STRICT"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	root := newRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
