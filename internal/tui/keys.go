package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds the console keys.
type KeyMap struct {
	NextCategory key.Binding
	PrevCategory key.Binding
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Toggle       key.Binding
	NextProduct  key.Binding
	Clear        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextCategory: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
		PrevCategory: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev category")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev option")),
		Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next option")),
		Toggle:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
		NextProduct:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next product")),
		Clear:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextCategory, k.Toggle, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextCategory, k.PrevCategory, k.NextProduct},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Clear, k.Help, k.Quit},
	}
}
