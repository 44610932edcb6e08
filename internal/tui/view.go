package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unveels/tryon/internal/infrastructure/logging"
	"github.com/unveels/tryon/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	rules, mounted := m.session.Active()
	title := "Try-on console"
	if mounted {
		title = fmt.Sprintf("%s • %s", title, rules.Label)
	}
	sections = append(sections, titleStyle.Render(title), m.renderTabs())

	if mounted {
		state, _ := m.session.State()
		rows := m.Rows()
		if len(rows) > 0 {
			sections = append(sections, sectionStyle.Render("Options"))
		}
		for i, row := range rows {
			sections = append(sections, m.renderRow(i, row, func(v string) bool { return selected(row, state, v) }))
		}

		if capacity, ok := rules.MaxColors(state.ShadeMode); ok && rules.Forward.Colors {
			sections = append(sections, rowLabelStyle.Render("Window")+components.NewCapacity(capacity).View(len(state.Colors)))
		}
		if state.ColorFamily != "" {
			sections = append(sections, rowLabelStyle.Render("Family")+state.ColorFamily)
		}

		sections = append(sections, sectionStyle.Render("Channels"), components.ChannelTable(rules.Channels, m.session.Snapshot()))
	}

	if line := m.statusLine(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.categories))
	for i, c := range m.categories {
		style := tabStyle
		if i == m.tab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(c.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderRow(index int, row Row, isSelected func(string) bool) string {
	label := rowLabelStyle.Render(row.Label)
	if index == m.focus {
		label = focusLabelStyle.Render(row.Label)
	}

	cells := make([]string, 0, len(row.Values))
	for j, value := range row.Values {
		var cell string
		if row.Kind == RowColors {
			cell = components.Swatch(value, isSelected(value))
			if index == m.focus && j == m.cursor {
				cell = "[" + cell + "]"
			} else {
				cell = " " + cell + " "
			}
		} else {
			style := optionStyle
			if isSelected(value) {
				style = selectedStyle
			}
			if index == m.focus && j == m.cursor {
				style = cursorStyle
			}
			cell = style.Render(row.Labels[j])
		}
		cells = append(cells, cell)
	}
	return label + strings.Join(cells, "")
}

func (m Model) statusLine() string {
	if m.status != "" {
		if m.failed {
			return errorStyle.Render(m.status)
		}
		return statusStyle.Render(m.status)
	}
	if m.logs != nil {
		if entry, ok := m.logs.Latest(logging.LevelWarn); ok {
			return warningStyle.Render(fmt.Sprintf("%s: %s", entry.Level, entry.Msg))
		}
	}
	return ""
}
