package components

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"

	"github.com/unveels/tryon/internal/domain/render"
)

func TestCapacityView(t *testing.T) {
	t.Parallel()

	cases := []struct {
		max, used int
		label     string
	}{
		{max: 1, used: 0, label: "0/1"},
		{max: 2, used: 2, label: "2/2"},
		{max: 1, used: 3, label: "3/1"},
		{max: 0, used: 0, label: "0/0"},
	}
	for _, tc := range cases {
		view := NewCapacity(tc.max).View(tc.used)
		require.Contains(t, view, tc.label)
		require.Greater(t, len(strings.TrimSpace(view)), len(tc.label))
	}
}

func TestSwatch(t *testing.T) {
	t.Parallel()

	require.Contains(t, Swatch("#ff0000", true), "●")
	require.NotContains(t, Swatch("#ff0000", false), "●")
	require.Equal(t, "[oops]", Swatch("oops", true))
}

func TestContrast(t *testing.T) {
	t.Parallel()

	white, err := colorful.Hex("#ffffff")
	require.NoError(t, err)
	black, err := colorful.Hex("#000000")
	require.NoError(t, err)

	require.Equal(t, dark, Contrast(white))
	require.Equal(t, light, Contrast(black))
}

func TestSwatchesMarksSelected(t *testing.T) {
	t.Parallel()

	row := Swatches([]string{"#ff0000", "#00ff00"}, func(hex string) bool { return hex == "#00ff00" })
	require.Equal(t, 1, strings.Count(row, "●"))
}

func TestChannelTable(t *testing.T) {
	t.Parallel()

	snap := render.Snapshot{
		"blush": {Visible: true, Colors: []string{"#ff0000"}, Material: 1, Pattern: render.NoIndex, Mode: "Single"},
		"hair":  render.EmptyChannel(),
	}
	table := ChannelTable([]string{"blush", "missing"}, snap)
	lines := strings.Split(table, "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "blush")
	require.Contains(t, lines[1], "on")
	require.Contains(t, lines[1], "Single")
	require.NotContains(t, table, "hair")

	require.Equal(t, "-", IndexLabel(render.NoIndex))
	require.Equal(t, "3", IndexLabel(3))
}
