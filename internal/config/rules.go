package config

import (
	"fmt"

	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/domain/selection"
)

// Rules converts a validated configuration into the controller rule tables.
func (c *Config) Rules() ([]selection.Rules, error) {
	out := make([]selection.Rules, 0, len(c.Categories))
	for _, category := range c.Categories {
		rules, err := c.rulesFor(category)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", category.ID, err)
		}
		out = append(out, rules)
	}
	return out, nil
}

// RulesFor converts a single category by id.
func (c *Config) RulesFor(id string) (selection.Rules, error) {
	category, ok := c.Category(id)
	if !ok {
		return selection.Rules{}, fmt.Errorf("category %q is not configured", id)
	}
	return c.rulesFor(category)
}

func (c *Config) rulesFor(category Category) (selection.Rules, error) {
	modes := make([]selection.ModeRule, 0, len(category.Modes))
	for _, mode := range category.Modes {
		name, err := selection.ParseShadeMode(mode.Name)
		if err != nil {
			return selection.Rules{}, err
		}
		modes = append(modes, selection.ModeRule{Mode: name, MaxColors: mode.MaxColors})
	}

	defaultMode, err := selection.ParseShadeMode(category.DefaultMode)
	if err != nil {
		return selection.Rules{}, err
	}

	spec := catalog.OptionSpec{
		Shapes:   category.Shapes,
		Patterns: category.Patterns,
	}
	kinds := []struct {
		raw    string
		target *catalog.AttributeKind
	}{
		{category.Attributes.Colors, &spec.Colors},
		{category.Attributes.Textures, &spec.Textures},
		{category.Attributes.Fabrics, &spec.Fabrics},
		{category.Attributes.Family, &spec.Family},
	}
	for _, k := range kinds {
		if k.raw == "" {
			continue
		}
		kind, err := catalog.ParseAttributeKind(k.raw)
		if err != nil {
			return selection.Rules{}, err
		}
		*k.target = kind
	}
	if spec.Textures != "" {
		spec.KnownTextures = append([]catalog.Option{}, c.Textures...)
	}
	if spec.Fabrics != "" {
		spec.KnownFabrics = append([]catalog.Option{}, c.Fabrics...)
	}

	return selection.Rules{
		Category:    selection.Category(category.ID),
		Label:       category.Label,
		Channels:    append([]string{}, category.Channels...),
		Modes:       modes,
		DefaultMode: defaultMode,
		Forward: selection.Forwarding{
			Colors:   category.Forward.Colors,
			Material: category.Forward.Material,
			Pattern:  category.Forward.Pattern,
			Mode:     category.Forward.Mode,
		},
		Visibility: category.Visibility,
		Options:    spec,
	}, nil
}
