package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Option is a presented choice with a stable value and a display label.
type Option struct {
	Value string `yaml:"value" json:"value" validate:"required"`
	Label string `yaml:"label" json:"label" validate:"required"`
}

// Slot names a single-valued selection a category may present.
type Slot string

const (
	SlotTexture Slot = "texture"
	SlotFabric  Slot = "fabric"
	SlotShape   Slot = "shape"
	SlotPattern Slot = "pattern"
)

// Slots lists every single-valued slot in presentation order.
var Slots = []Slot{SlotTexture, SlotFabric, SlotShape, SlotPattern}

// OptionSpec describes how a category derives its options from a product.
// Zero kinds and counts mean the category does not present that row.
type OptionSpec struct {
	Colors        AttributeKind
	Textures      AttributeKind
	Fabrics       AttributeKind
	Family        AttributeKind
	Shapes        int
	Patterns      int
	KnownTextures []Option
	KnownFabrics  []Option
}

// Options are the closed-set tokens the UI may send for one mounted product.
type Options struct {
	Colors   []string
	Family   string
	Textures []Option
	Fabrics  []Option
	Shapes   []Option
	Patterns []Option
}

// Rejection records a raw attribute token dropped at extraction time.
type Rejection struct {
	Kind  AttributeKind
	Token string
	Err   error
}

// BuildOptions derives the presented options of product according to spec.
// Color tokens are normalised to lowercase #rrggbb; tokens that do not parse
// as colors are returned as rejections and never presented.
func BuildOptions(product Product, spec OptionSpec) (Options, []Rejection) {
	var opts Options
	var rejected []Rejection

	if spec.Colors != "" {
		raw := SplitTokens(ExtractAttributes([]Product{product}, spec.Colors))
		seen := make(map[string]struct{}, len(raw))
		for _, token := range raw {
			normalized, err := NormalizeHex(token)
			if err != nil {
				rejected = append(rejected, Rejection{Kind: spec.Colors, Token: token, Err: err})
				continue
			}
			if _, ok := seen[normalized]; ok {
				continue
			}
			seen[normalized] = struct{}{}
			opts.Colors = append(opts.Colors, normalized)
		}
	}

	if spec.Family != "" {
		if families := SplitTokens(ExtractAttributes([]Product{product}, spec.Family)); len(families) > 0 {
			opts.Family = families[0]
		}
	}

	if spec.Textures != "" {
		opts.Textures = FilterKnown(SplitTokens(ExtractAttributes([]Product{product}, spec.Textures)), spec.KnownTextures)
	}
	if spec.Fabrics != "" {
		opts.Fabrics = FilterKnown(SplitTokens(ExtractAttributes([]Product{product}, spec.Fabrics)), spec.KnownFabrics)
	}

	opts.Shapes = IndexOptions("Shape", spec.Shapes)
	opts.Patterns = IndexOptions("Pattern", spec.Patterns)

	return opts, rejected
}

// FilterKnown keeps the known options whose value appears in values, in the
// order of the known table.
func FilterKnown(values []string, known []Option) []Option {
	present := make(map[string]struct{}, len(values))
	for _, v := range values {
		present[v] = struct{}{}
	}
	out := make([]Option, 0, len(known))
	for _, option := range known {
		if _, ok := present[option.Value]; ok {
			out = append(out, option)
		}
	}
	return out
}

// IndexOptions returns n options whose values are the decimal indexes "0".."n-1".
func IndexOptions(label string, n int) []Option {
	if n <= 0 {
		return nil
	}
	out := make([]Option, n)
	for i := range out {
		out[i] = Option{Value: strconv.Itoa(i), Label: fmt.Sprintf("%s %d", label, i+1)}
	}
	return out
}

// NormalizeHex parses a hex color token (with or without '#', 3 or 6 digits)
// and returns it as lowercase #rrggbb.
func NormalizeHex(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", fmt.Errorf("empty color token")
	}
	if !strings.HasPrefix(trimmed, "#") {
		trimmed = "#" + trimmed
	}
	c, err := colorful.Hex(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", token, err)
	}
	return c.Hex(), nil
}

// HasColor reports whether token is one of the presented colors.
func (o Options) HasColor(token string) bool {
	for _, c := range o.Colors {
		if c == token {
			return true
		}
	}
	return false
}

// Slot returns the presented options for slot.
func (o Options) Slot(slot Slot) []Option {
	switch slot {
	case SlotTexture:
		return o.Textures
	case SlotFabric:
		return o.Fabrics
	case SlotShape:
		return o.Shapes
	case SlotPattern:
		return o.Patterns
	default:
		return nil
	}
}

// IndexOf returns the position of value within the slot's options, or -1.
func (o Options) IndexOf(slot Slot, value string) int {
	for i, option := range o.Slot(slot) {
		if option.Value == value {
			return i
		}
	}
	return -1
}
