package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unveels/tryon/internal/domain/catalog"
)

func TestNewStoreIsEmpty(t *testing.T) {
	t.Parallel()

	s := NewStore(CategoryBlush, ShadeSingle)
	require.Equal(t, CategoryBlush, s.Category())
	require.Empty(t, s.Colors())
	require.False(t, s.HasSelection())
	require.Equal(t, ShadeSingle, s.ShadeMode())
	for _, slot := range catalog.Slots {
		require.Empty(t, s.Selected(slot))
	}
}

func TestAddColorSlidingWindow(t *testing.T) {
	t.Parallel()

	s := NewStore(CategoryBlush, ShadeDual)
	require.Empty(t, s.AddColor("A", 2))
	require.Empty(t, s.AddColor("B", 2))
	require.Equal(t, []string{"A"}, s.AddColor("C", 2))
	require.Equal(t, []string{"B", "C"}, s.Colors())
}

func TestAddColorTruncatesLazilyAfterModeShrink(t *testing.T) {
	t.Parallel()

	s := NewStore(CategoryBlush, ShadeTri)
	s.AddColor("A", 3)
	s.AddColor("B", 3)
	s.AddColor("C", 3)

	s.SetShadeMode(ShadeSingle)
	require.Equal(t, []string{"A", "B", "C"}, s.Colors(), "mode change must not truncate")

	evicted := s.AddColor("D", 1)
	require.Equal(t, []string{"A", "B", "C"}, evicted)
	require.Equal(t, []string{"D"}, s.Colors())
}

func TestAddColorIgnoresDuplicates(t *testing.T) {
	t.Parallel()

	s := NewStore(CategoryBlush, ShadeDual)
	s.AddColor("A", 2)
	require.Empty(t, s.AddColor("A", 2))
	require.Equal(t, []string{"A"}, s.Colors())
}

func TestRemoveColor(t *testing.T) {
	t.Parallel()

	s := NewStore(CategoryBlush, ShadeTri)
	s.SetColors([]string{"A", "B", "C"})
	require.True(t, s.RemoveColor("B"))
	require.False(t, s.RemoveColor("Z"))
	require.Equal(t, []string{"A", "C"}, s.Colors())
}

func TestSlotAccessorsLastWriteWins(t *testing.T) {
	t.Parallel()

	s := NewStore(CategoryScarves, ShadeSingle)
	s.SetFabric("silk")
	s.SetFabric("cotton")
	s.SetTexture("matte")
	s.SetShape("1")
	s.SetPattern("2")

	require.Equal(t, "cotton", s.Fabric())
	require.Equal(t, "matte", s.Texture())
	require.Equal(t, "1", s.Shape())
	require.Equal(t, "2", s.Pattern())
	require.True(t, s.HasSelection())

	s.SetFabric("")
	require.Empty(t, s.Fabric())
}

func TestColorFamilyIsNotASelection(t *testing.T) {
	t.Parallel()

	s := NewStore(CategoryHairColor, ShadeSingle)
	s.SetColorFamily("brown")
	require.False(t, s.HasSelection())
	require.Equal(t, "brown", s.ColorFamily())
}

func TestClearSelectionKeepsModeAndFamily(t *testing.T) {
	t.Parallel()

	s := NewStore(CategoryBlush, ShadeDual)
	s.SetColors([]string{"A"})
	s.SetTexture("matte")
	s.SetColorFamily("pink")

	s.ClearSelection()
	require.False(t, s.HasSelection())
	require.Equal(t, ShadeDual, s.ShadeMode())
	require.Equal(t, "pink", s.ColorFamily())

	s.Reset(ShadeSingle)
	require.Equal(t, ShadeSingle, s.ShadeMode())
	require.Empty(t, s.ColorFamily())
}

func TestStateIsACopy(t *testing.T) {
	t.Parallel()

	s := NewStore(CategoryBlush, ShadeDual)
	s.SetColors([]string{"A"})
	state := s.State()
	state.Colors[0] = "Z"
	require.Equal(t, []string{"A"}, s.Colors())

	s.SetColors([]string{"B"})
	s.restore(state)
	require.Equal(t, []string{"Z"}, s.Colors())
}
