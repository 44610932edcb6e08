package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	light = lipgloss.Color("#ffffff")
	dark  = lipgloss.Color("#000000")
)

// Swatch renders a color chip. Selected chips carry a marker drawn in
// whichever of black or white contrasts with the chip. Tokens that do not
// parse as colors render as plain text.
func Swatch(hex string, selected bool) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "[" + hex + "]"
	}
	marker := "   "
	if selected {
		marker = " ● "
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(Contrast(c)).
		Render(marker)
}

// Contrast picks black or white text for background c.
func Contrast(c colorful.Color) lipgloss.Color {
	l, _, _ := c.Lab()
	if l > 0.6 {
		return dark
	}
	return light
}

// Swatches renders a row of chips separated by a space.
func Swatches(colors []string, selected func(string) bool) string {
	chips := make([]string, 0, len(colors))
	for _, hex := range colors {
		chips = append(chips, Swatch(hex, selected != nil && selected(hex)))
	}
	return strings.Join(chips, " ")
}
