package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplayExampleScenarios(t *testing.T) {
	for _, name := range []string{"blush-single.yaml", "blush-tri.yaml", "haircolor-family.yaml"} {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, "replay", filepath.Join("../../examples/scenarios", name))
			require.NoError(t, err)
		})
	}
}

func TestReplayJSONReport(t *testing.T) {
	stdout, _, err := execute(t, "replay", blushSingle, "--format", "json")
	require.NoError(t, err)

	var report struct {
		Name     string `json:"name"`
		Checks   int    `json:"checks"`
		Failed   int    `json:"failed"`
		Mounted  string `json:"mounted"`
		Channels map[string]struct {
			Visible  bool `json:"visible"`
			Material int  `json:"material"`
		} `json:"channels"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Equal(t, "blush single mode", report.Name)
	require.Equal(t, "blush", report.Mounted)
	require.Zero(t, report.Failed)
	require.Greater(t, report.Checks, 0)
	require.Len(t, report.Channels, 5)
	require.False(t, report.Channels["blush"].Visible)
	require.Equal(t, -1, report.Channels["blush"].Material)
}

func TestReplayTableWithCommands(t *testing.T) {
	stdout, _, err := execute(t, "replay", blushSingle, "--format", "table", "--commands")
	require.NoError(t, err)
	require.Contains(t, stdout, "Scenario: blush single mode")
	require.Contains(t, stdout, "Mounted: blush (Single)")
	require.Contains(t, stdout, "Frames:")
	require.Contains(t, stdout, "toggle_color #e8a0a0")
}

func TestReplayGoldenFile(t *testing.T) {
	golden := filepath.Join(t.TempDir(), "blush.golden.yaml")

	_, _, err := execute(t, "replay", blushSingle, "--golden", golden, "--update")
	require.NoError(t, err)
	_, err = os.Stat(golden)
	require.NoError(t, err)

	_, _, err = execute(t, "replay", blushSingle, "--golden", golden)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("name: something else\n"), 0o600))
	_, _, err = execute(t, "replay", blushSingle, "--golden", golden)
	require.Error(t, err)
	require.Contains(t, err.Error(), "output differs from golden file")
	require.Contains(t, err.Error(), "-name: something else")
}

func TestReplayReportsFailedExpectations(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "failing.yaml", `name: wrong expectation
steps:
  - action: mount
    category: eyeliner
  - expect:
      mounted: blush
`)

	stdout, _, err := execute(t, "replay", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), `scenario "wrong expectation"`)
	require.Contains(t, stdout, "failed: 1")
}

func TestReplayStrictAbortsOnViolation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "violation.yaml", `name: unknown color
products: `+mustAbs(t, exampleProducts)+`
steps:
  - action: mount
    category: blush
  - action: toggle_color
    token: "#123456"
`)

	_, _, err := execute(t, "replay", path)
	require.NoError(t, err, "lenient sessions log the violation and continue")

	_, _, err = execute(t, "--strict", "replay", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "color is not in the product palette")
}

func TestReplayRejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "replay", blushSingle, "--format", "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unsupported format "xml"`)
}

func TestReplayMissingScenario(t *testing.T) {
	_, _, err := execute(t, "replay", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func mustAbs(t *testing.T, path string) string {
	t.Helper()
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}
