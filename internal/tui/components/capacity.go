package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Capacity renders how much of the shade mode's color window is in use.
type Capacity struct {
	bar progress.Model
	max int
}

// NewCapacity creates a capacity bar for a window of max colors.
func NewCapacity(max int) Capacity {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 20
	return Capacity{bar: bar, max: max}
}

// View renders the bar for used colors. Used may exceed max right after a
// shade mode shrink; the bar caps at full while the label shows the count.
func (c Capacity) View(used int) string {
	ratio := 0.0
	if c.max > 0 {
		ratio = math.Min(1.0, float64(used)/float64(c.max))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", used, c.max))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", c.bar.ViewAs(ratio))
}
