package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unveels/tryon/internal/application/session"
	"github.com/unveels/tryon/internal/domain/selection"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		return m.mount(msg.index), nil
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.categories)
	rows := m.Rows()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.NextCategory) && n > 0:
		return m, mountCmd((m.tab + 1) % n)
	case key.Matches(msg, m.keys.PrevCategory) && n > 0:
		return m, mountCmd((m.tab - 1 + n) % n)
	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus < len(rows)-1 {
			m.focus++
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.focus < len(rows) && m.cursor < len(rows[m.focus].Values)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.focus < len(rows) && m.cursor < len(rows[m.focus].Values) {
			row := rows[m.focus]
			m = m.dispatch(actionFor(row, row.Values[m.cursor]))
		}
	case key.Matches(msg, m.keys.NextProduct):
		m = m.nextProduct()
	case key.Matches(msg, m.keys.Clear):
		m = m.dispatch(session.Action{Kind: session.ActionClear})
	}
	return m, nil
}

func (m Model) mount(index int) Model {
	if index < 0 || index >= len(m.categories) {
		return m
	}
	m.tab = index
	m.product = 0
	m.focus = 0
	m.cursor = 0
	return m.dispatch(session.Action{Kind: session.ActionMount, Category: string(m.categories[index].Category)})
}

func (m Model) nextProduct() Model {
	products := m.session.Products()
	if len(products) < 2 {
		return m
	}
	m.product = (m.product + 1) % len(products)
	m.cursor = 0
	return m.dispatch(session.Action{Kind: session.ActionSelectProduct, Product: products[m.product].SKU})
}

// dispatch runs action and records the outcome in the status line. Strict
// sessions panic on precondition violations; the console reports them
// instead of exiting.
func (m Model) dispatch(action session.Action) (out Model) {
	out = m
	defer func() {
		if rec := recover(); rec != nil {
			violation, ok := rec.(*selection.PreconditionError)
			if !ok {
				panic(rec)
			}
			out.status = violation.Error()
			out.failed = true
		}
	}()

	result, err := m.session.Dispatch(m.ctx, action)
	switch {
	case err != nil:
		out.status = err.Error()
		out.failed = true
	case result.Outcome.Violation != nil:
		out.status = result.Outcome.Violation.Error()
		out.failed = true
	case len(result.Outcome.Evicted) > 0:
		out.status = fmt.Sprintf("%s (evicted %v)", action, result.Outcome.Evicted)
		out.failed = false
	default:
		out.status = action.String()
		out.failed = false
	}
	return out
}
