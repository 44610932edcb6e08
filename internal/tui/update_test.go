package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/unveels/tryon/internal/application/session"
	"github.com/unveels/tryon/internal/domain/selection"
)

func TestToggleColorFromKeyboard(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	state, ok := f.session.State()
	require.True(t, ok)
	require.Equal(t, []string{"#ff0000"}, state.Colors)

	blush, ok := f.session.Aggregator().Channel("blush")
	require.True(t, ok)
	require.True(t, blush.Visible)
	require.Equal(t, []string{"#ff0000"}, blush.Colors)

	status, failed := m.Status()
	require.False(t, failed)
	require.Equal(t, "toggle_color #ff0000", status)
}

func TestSlidingWindowReportsEviction(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)

	// Single mode keeps one color; the second toggle evicts the first.
	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	state, _ := f.session.State()
	require.Equal(t, []string{"#00ff00"}, state.Colors)
	status, _ := m.Status()
	require.Contains(t, status, "evicted [#ff0000]")
}

func TestOptionRowsToggleSlots(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	state, _ := f.session.State()
	require.Equal(t, "shimmer", state.Texture)
	require.Equal(t, "0", state.Shape)

	blush, _ := f.session.Aggregator().Channel("blush")
	require.Equal(t, 1, blush.Material)
	require.Equal(t, 0, blush.Pattern)
}

func TestModeRowSetsShadeMode(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	state, _ := f.session.State()
	require.Equal(t, selection.ShadeDual, state.ShadeMode)

	// Focus stays on the last row.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 3, m.focus)
}

func TestClearKey(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("c"))

	state, _ := f.session.State()
	require.Empty(t, state.Colors)
	blush, _ := f.session.Aggregator().Channel("blush")
	require.False(t, blush.Visible)

	status, _ := m.Status()
	require.Equal(t, "clear", status)
}

func TestCategoryNavigationUnmountsPrevious(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, cmd)
	m = step(t, next.(Model), cmd())

	require.Equal(t, 1, m.Tab())
	rules, ok := f.session.Active()
	require.True(t, ok)
	require.Equal(t, selection.CategoryHairColor, rules.Category)

	blush, _ := f.session.Aggregator().Channel("blush")
	require.False(t, blush.Visible)
	require.Empty(t, blush.Colors)

	// shift+tab wraps back around.
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = step(t, next.(Model), cmd())
	require.Equal(t, 0, m.Tab())
}

func TestNextProductSelectsCard(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = step(t, next.(Model), cmd())
	m = press(t, m, runes("p"))

	state, _ := f.session.State()
	require.Equal(t, "blonde", state.ColorFamily)
	require.Equal(t, []string{"#e6be8a"}, state.Colors)

	status, _ := m.Status()
	require.Equal(t, "select_product HC-002", status)
}

func TestStrictViolationIsReported(t *testing.T) {
	f := newFixture(t, true)
	m := started(t, f)

	m = m.dispatch(session.Action{Kind: session.ActionToggleColor, Token: "#123456"})

	status, failed := m.Status()
	require.True(t, failed)
	require.Contains(t, status, "color is not in the product palette")

	// The session keeps serving actions afterwards.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, failed = m.Status()
	require.False(t, failed)
}

func TestLenientViolationIsReported(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)

	m = m.dispatch(session.Action{Kind: session.ActionToggleTexture, Token: "velvet"})

	status, failed := m.Status()
	require.True(t, failed)
	require.Contains(t, status, "velvet")
}

func TestHelpAndQuit(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)

	m = press(t, m, runes("?"))
	require.True(t, m.help.ShowAll)

	m = step(t, m, tea.WindowSizeMsg{Width: 42, Height: 10})
	require.Equal(t, 42, m.help.Width)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.True(t, next.(Model).quitting)
}
