package selection

import "github.com/unveels/tryon/internal/domain/catalog"

// Store holds one category's in-progress choices. It knows nothing about
// other categories or the aggregator. Setters are plain replacements except
// for colors, which form a sliding window bounded by the caller-supplied
// capacity.
type Store struct {
	category Category
	colors   []string
	slots    map[catalog.Slot]string
	mode     ShadeMode
	family   string
}

// StoreState is a value copy of a store, used for assertions and display.
type StoreState struct {
	Category    Category  `yaml:"category" json:"category"`
	Colors      []string  `yaml:"colors" json:"colors"`
	Texture     string    `yaml:"texture,omitempty" json:"texture,omitempty"`
	Fabric      string    `yaml:"fabric,omitempty" json:"fabric,omitempty"`
	Shape       string    `yaml:"shape,omitempty" json:"shape,omitempty"`
	Pattern     string    `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	ShadeMode   ShadeMode `yaml:"shade_mode" json:"shade_mode"`
	ColorFamily string    `yaml:"color_family,omitempty" json:"color_family,omitempty"`
}

// NewStore creates an empty store in the given shade mode.
func NewStore(category Category, mode ShadeMode) *Store {
	return &Store{
		category: category,
		colors:   []string{},
		slots:    make(map[catalog.Slot]string, len(catalog.Slots)),
		mode:     mode,
	}
}

// Category returns the owning category.
func (s *Store) Category() Category { return s.category }

// Colors returns a copy of the selected colors, oldest first.
func (s *Store) Colors() []string { return append([]string{}, s.colors...) }

// HasColor reports whether token is selected.
func (s *Store) HasColor(token string) bool {
	for _, c := range s.colors {
		if c == token {
			return true
		}
	}
	return false
}

// SetColors replaces the selected colors.
func (s *Store) SetColors(colors []string) { s.colors = append([]string{}, colors...) }

// AddColor appends token within capacity max. When the window is full, the
// oldest colors are evicted so that the result holds at most max entries;
// the evicted colors are returned. Adding a present token is a no-op.
func (s *Store) AddColor(token string, max int) []string {
	if s.HasColor(token) {
		return nil
	}
	if max < 1 {
		max = 1
	}
	var evicted []string
	if overflow := len(s.colors) - (max - 1); overflow > 0 {
		evicted = append(evicted, s.colors[:overflow]...)
		s.colors = append([]string{}, s.colors[overflow:]...)
	}
	s.colors = append(s.colors, token)
	return evicted
}

// RemoveColor drops token and reports whether it was selected.
func (s *Store) RemoveColor(token string) bool {
	for i, c := range s.colors {
		if c == token {
			s.colors = append(append([]string{}, s.colors[:i]...), s.colors[i+1:]...)
			return true
		}
	}
	return false
}

// Selected returns the token chosen in slot, or "" when none is.
func (s *Store) Selected(slot catalog.Slot) string { return s.slots[slot] }

// Select sets slot to token; an empty token clears it.
func (s *Store) Select(slot catalog.Slot, token string) {
	if token == "" {
		delete(s.slots, slot)
		return
	}
	s.slots[slot] = token
}

// Texture returns the selected texture token.
func (s *Store) Texture() string { return s.Selected(catalog.SlotTexture) }

// SetTexture replaces the selected texture.
func (s *Store) SetTexture(token string) { s.Select(catalog.SlotTexture, token) }

// Fabric returns the selected fabric token.
func (s *Store) Fabric() string { return s.Selected(catalog.SlotFabric) }

// SetFabric replaces the selected fabric.
func (s *Store) SetFabric(token string) { s.Select(catalog.SlotFabric, token) }

// Shape returns the selected shape token.
func (s *Store) Shape() string { return s.Selected(catalog.SlotShape) }

// SetShape replaces the selected shape.
func (s *Store) SetShape(token string) { s.Select(catalog.SlotShape, token) }

// Pattern returns the selected pattern token.
func (s *Store) Pattern() string { return s.Selected(catalog.SlotPattern) }

// SetPattern replaces the selected pattern.
func (s *Store) SetPattern(token string) { s.Select(catalog.SlotPattern, token) }

// ShadeMode returns the current shade mode.
func (s *Store) ShadeMode() ShadeMode { return s.mode }

// SetShadeMode replaces the shade mode. Colors are not truncated here; the
// next AddColor applies the new capacity.
func (s *Store) SetShadeMode(mode ShadeMode) { s.mode = mode }

// ColorFamily returns the color family filter.
func (s *Store) ColorFamily() string { return s.family }

// SetColorFamily replaces the color family filter.
func (s *Store) SetColorFamily(family string) { s.family = family }

// HasSelection reports whether any color or slot is selected. The color
// family filter does not count.
func (s *Store) HasSelection() bool {
	return len(s.colors) > 0 || len(s.slots) > 0
}

// ClearSelection empties colors and every slot, keeping the shade mode and
// color family.
func (s *Store) ClearSelection() {
	s.colors = []string{}
	s.slots = make(map[catalog.Slot]string, len(catalog.Slots))
}

// Reset returns the store to its freshly mounted state.
func (s *Store) Reset(mode ShadeMode) {
	s.ClearSelection()
	s.mode = mode
	s.family = ""
}

// State returns a value copy of the store.
func (s *Store) State() StoreState {
	return StoreState{
		Category:    s.category,
		Colors:      s.Colors(),
		Texture:     s.Texture(),
		Fabric:      s.Fabric(),
		Shape:       s.Shape(),
		Pattern:     s.Pattern(),
		ShadeMode:   s.mode,
		ColorFamily: s.family,
	}
}

func (s *Store) restore(state StoreState) {
	s.colors = append([]string{}, state.Colors...)
	s.slots = make(map[catalog.Slot]string, len(catalog.Slots))
	s.Select(catalog.SlotTexture, state.Texture)
	s.Select(catalog.SlotFabric, state.Fabric)
	s.Select(catalog.SlotShape, state.Shape)
	s.Select(catalog.SlotPattern, state.Pattern)
	s.mode = state.ShadeMode
	s.family = state.ColorFamily
}
