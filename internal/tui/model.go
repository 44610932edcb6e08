// Package tui implements the interactive try-on console: category tabs,
// option rows driven by keyboard toggles, and a live view of the channels
// the mounted category owns.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unveels/tryon/internal/application/session"
	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/domain/selection"
	"github.com/unveels/tryon/internal/infrastructure/logging"
)

// RowKind identifies an option row.
type RowKind int

const (
	RowColors RowKind = iota
	RowMaterial
	RowPattern
	RowModes
)

// Row is one focusable option row of the mounted category.
type Row struct {
	Kind   RowKind
	Label  string
	Slot   catalog.Slot
	Values []string
	Labels []string
}

type mountMsg struct{ index int }

// Model contains the Bubbletea state of the console.
type Model struct {
	ctx        context.Context
	session    *session.Session
	categories []selection.Rules
	logs       *logging.EventBuffer

	keys KeyMap
	help help.Model

	tab      int
	product  int
	focus    int
	cursor   int
	status   string
	failed   bool
	quitting bool
}

// NewModel creates a console over sess. logs, when set, is the buffer the
// session logs into; its latest warning is shown in the status line.
func NewModel(ctx context.Context, sess *session.Session, logs *logging.EventBuffer) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		ctx:        sess.Context(ctx),
		session:    sess,
		categories: sess.Categories(),
		logs:       logs,
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
}

// Init mounts the first category.
func (m Model) Init() tea.Cmd {
	return mountCmd(0)
}

func mountCmd(index int) tea.Cmd {
	return func() tea.Msg { return mountMsg{index: index} }
}

// Tab returns the index of the mounted category tab.
func (m Model) Tab() int { return m.tab }

// Status returns the status line text and whether it reports a failure.
func (m Model) Status() (string, bool) { return m.status, m.failed }

// Rows returns the option rows of the mounted category.
func (m Model) Rows() []Row {
	rules, ok := m.session.Active()
	if !ok {
		return nil
	}
	opts, _ := m.session.Options()

	var rows []Row
	if len(opts.Colors) > 0 {
		rows = append(rows, Row{Kind: RowColors, Label: "Colors", Values: opts.Colors, Labels: opts.Colors})
	}
	for _, slot := range []catalog.Slot{catalog.SlotTexture, catalog.SlotFabric} {
		if options := opts.Slot(slot); len(options) > 0 {
			rows = append(rows, optionRow(RowMaterial, slot, options))
			break
		}
	}
	for _, slot := range []catalog.Slot{catalog.SlotShape, catalog.SlotPattern} {
		if options := opts.Slot(slot); len(options) > 0 {
			rows = append(rows, optionRow(RowPattern, slot, options))
			break
		}
	}
	if len(rules.Modes) > 1 {
		row := Row{Kind: RowModes, Label: "Mode"}
		for _, mode := range rules.ModeNames() {
			row.Values = append(row.Values, string(mode))
			row.Labels = append(row.Labels, string(mode))
		}
		rows = append(rows, row)
	}
	return rows
}

func optionRow(kind RowKind, slot catalog.Slot, options []catalog.Option) Row {
	row := Row{Kind: kind, Label: capitalise(string(slot)), Slot: slot}
	for _, o := range options {
		row.Values = append(row.Values, o.Value)
		row.Labels = append(row.Labels, o.Label)
	}
	return row
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// selected reports whether value is the current choice of row.
func selected(row Row, state selection.StoreState, value string) bool {
	switch row.Kind {
	case RowColors:
		for _, c := range state.Colors {
			if c == value {
				return true
			}
		}
		return false
	case RowMaterial, RowPattern:
		switch row.Slot {
		case catalog.SlotTexture:
			return state.Texture == value
		case catalog.SlotFabric:
			return state.Fabric == value
		case catalog.SlotShape:
			return state.Shape == value
		case catalog.SlotPattern:
			return state.Pattern == value
		}
	case RowModes:
		return string(state.ShadeMode) == value
	}
	return false
}

// actionFor maps a toggle on row to a session action.
func actionFor(row Row, value string) session.Action {
	switch row.Kind {
	case RowColors:
		return session.Action{Kind: session.ActionToggleColor, Token: value}
	case RowModes:
		return session.Action{Kind: session.ActionSetMode, Token: value}
	}
	switch row.Slot {
	case catalog.SlotTexture:
		return session.Action{Kind: session.ActionToggleTexture, Token: value}
	case catalog.SlotFabric:
		return session.Action{Kind: session.ActionToggleFabric, Token: value}
	case catalog.SlotShape:
		return session.Action{Kind: session.ActionToggleShape, Token: value}
	default:
		return session.Action{Kind: session.ActionTogglePattern, Token: value}
	}
}
