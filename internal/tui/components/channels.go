package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unveels/tryon/internal/domain/render"
)

var (
	headerCell = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	onCell     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	offCell    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ChannelTable renders the named channels of snap, one per line.
func ChannelTable(names []string, snap render.Snapshot) string {
	lines := []string{headerCell.Render(fmt.Sprintf("%-12s %-8s %-9s %-8s %-6s %s", "channel", "visible", "material", "pattern", "mode", "colors"))}
	for _, name := range names {
		state, ok := snap[name]
		if !ok {
			continue
		}
		visible := offCell.Render(fmt.Sprintf("%-8s", "off"))
		if state.Visible {
			visible = onCell.Render(fmt.Sprintf("%-8s", "on"))
		}
		mode := state.Mode
		if mode == "" {
			mode = "-"
		}
		lines = append(lines, fmt.Sprintf("%-12s %s %-9s %-8s %-6s %s",
			name,
			visible,
			IndexLabel(state.Material),
			IndexLabel(state.Pattern),
			mode,
			Swatches(state.Colors, nil),
		))
	}
	return strings.Join(lines, "\n")
}

// IndexLabel renders a material or pattern index.
func IndexLabel(index int) string {
	if index == render.NoIndex {
		return "-"
	}
	return fmt.Sprintf("%d", index)
}
