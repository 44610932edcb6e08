// Package selection implements the per-category selection stores and the
// controller rule engine that keeps them paired with the render aggregator.
// Category behaviour is driven by Rules tables rather than per-category code.
package selection

import (
	"fmt"
	"strings"

	"github.com/unveels/tryon/internal/domain/catalog"
)

// Category identifies a try-on feature such as blush or hair color.
type Category string

const (
	CategoryBlush      Category = "blush"
	CategoryHairColor  Category = "haircolor"
	CategoryScarves    Category = "scarves"
	CategoryFoundation Category = "foundation"
	CategoryEyeliner   Category = "eyeliner"
)

// ShadeMode bounds how many colors a category may apply at once.
type ShadeMode string

const (
	ShadeSingle ShadeMode = "Single"
	ShadeDual   ShadeMode = "Dual"
	ShadeTri    ShadeMode = "Tri"
)

// ParseShadeMode accepts the canonical names case-insensitively, plus "One"
// as an alias of Single.
func ParseShadeMode(raw string) (ShadeMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "single", "one":
		return ShadeSingle, nil
	case "dual":
		return ShadeDual, nil
	case "tri":
		return ShadeTri, nil
	default:
		return "", fmt.Errorf("unknown shade mode %q", raw)
	}
}

// ModeRule maps a shade mode to its color capacity.
type ModeRule struct {
	Mode      ShadeMode
	MaxColors int
}

// Forwarding selects which commands a category pushes to its channels.
type Forwarding struct {
	Colors   bool
	Material bool
	Pattern  bool
	Mode     bool
}

// Rules is the configuration of one category.
type Rules struct {
	Category    Category
	Label       string
	Channels    []string
	Modes       []ModeRule
	DefaultMode ShadeMode
	Forward     Forwarding
	// Visibility couples channel visibility to the presence of a selection.
	// When false the category never issues visibility commands.
	Visibility bool
	Options    catalog.OptionSpec
}

// MaxColors returns the capacity of mode, or false when the category does not
// offer it.
func (r Rules) MaxColors(mode ShadeMode) (int, bool) {
	for _, rule := range r.Modes {
		if rule.Mode == mode {
			return rule.MaxColors, true
		}
	}
	return 0, false
}

// ModeNames lists the offered modes in table order.
func (r Rules) ModeNames() []ShadeMode {
	out := make([]ShadeMode, 0, len(r.Modes))
	for _, rule := range r.Modes {
		out = append(out, rule.Mode)
	}
	return out
}

// OwnershipMap converts a rule set into the channel→category map used to
// construct the aggregator.
func OwnershipMap(rules []Rules) (map[string]string, error) {
	owners := make(map[string]string)
	for _, r := range rules {
		for _, channel := range r.Channels {
			if existing, ok := owners[channel]; ok {
				return nil, fmt.Errorf("channel %q owned by both %q and %q", channel, existing, r.Category)
			}
			owners[channel] = string(r.Category)
		}
	}
	return owners, nil
}

// materialSlot returns the slot whose selection drives the material index.
func (r Rules) materialSlot() (catalog.Slot, bool) {
	switch {
	case r.Options.Textures != "":
		return catalog.SlotTexture, true
	case r.Options.Fabrics != "":
		return catalog.SlotFabric, true
	default:
		return "", false
	}
}

// patternSlot returns the slot whose selection drives the pattern index.
func (r Rules) patternSlot() (catalog.Slot, bool) {
	switch {
	case r.Options.Shapes > 0:
		return catalog.SlotShape, true
	case r.Options.Patterns > 0:
		return catalog.SlotPattern, true
	default:
		return "", false
	}
}
