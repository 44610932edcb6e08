package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/unveels/tryon/internal/infrastructure/logging"
)

func TestViewShowsMountedCategory(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	for _, want := range []string{"Try-on console", "Blush", "Hair Color", "Colors", "Texture", "Shape", "Mode", "Channels", "blush", "1/1", "toggle_color #ff0000"} {
		require.Contains(t, view, want)
	}
}

func TestViewFallsBackToLatestWarning(t *testing.T) {
	f := newFixture(t, false)
	m := NewModel(context.Background(), f.session, f.logs)

	logging.NewBufferedLogger(f.logs).Warn(context.Background(), "render lag")
	// no status yet; the buffered warning is shown instead
	require.Contains(t, m.View(), "warn: render lag")
}

func TestViewEmptyWhenQuitting(t *testing.T) {
	f := newFixture(t, false)
	m := started(t, f)

	next, _ := m.Update(runes("q"))
	require.Empty(t, next.(Model).View())
}
