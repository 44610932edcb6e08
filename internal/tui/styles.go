package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("212")).Underline(true)

	rowLabelStyle   = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("245"))
	focusLabelStyle = lipgloss.NewStyle().Width(10).Bold(true).Foreground(lipgloss.Color("212"))
	optionStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("42"))
	cursorStyle     = lipgloss.NewStyle().Padding(0, 1).Reverse(true)

	statusStyle  = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("245"))
	warningStyle = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("226"))
	errorStyle   = lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("196")).Bold(true)
)
