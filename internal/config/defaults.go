package config

import "github.com/unveels/tryon/internal/domain/catalog"

// DefaultTextures is the built-in texture vocabulary.
var DefaultTextures = []catalog.Option{
	{Value: "metallic", Label: "Metallic"},
	{Value: "matte", Label: "Matte"},
	{Value: "shimmer", Label: "Shimmer"},
	{Value: "satin", Label: "Satin"},
	{Value: "glossy", Label: "Glossy"},
}

// DefaultFabrics is the built-in fabric vocabulary.
var DefaultFabrics = []catalog.Option{
	{Value: "silk", Label: "Silk"},
	{Value: "cotton", Label: "Cotton"},
	{Value: "chiffon", Label: "Chiffon"},
	{Value: "wool", Label: "Wool"},
	{Value: "linen", Label: "Linen"},
}

var allModes = []Mode{
	{Name: "Single", MaxColors: 1},
	{Name: "Dual", MaxColors: 2},
	{Name: "Tri", MaxColors: 3},
}

// Default returns the built-in rule table. Every call returns a fresh copy.
func Default() *Config {
	single := []Mode{{Name: "Single", MaxColors: 1}}
	return &Config{
		Version:  "1.0",
		Textures: append([]catalog.Option{}, DefaultTextures...),
		Fabrics:  append([]catalog.Option{}, DefaultFabrics...),
		Categories: []Category{
			{
				ID:          "blush",
				Label:       "Blush",
				Channels:    []string{"blush"},
				Modes:       append([]Mode{}, allModes...),
				DefaultMode: "Single",
				Attributes:  Attributes{Colors: "hexacode", Textures: "texture"},
				Shapes:      5,
				Forward:     Forward{Colors: true, Material: true, Pattern: true, Mode: true},
				Visibility:  true,
			},
			{
				ID:          "haircolor",
				Label:       "Hair Color",
				Channels:    []string{"hair"},
				Modes:       append([]Mode{}, single...),
				DefaultMode: "Single",
				Attributes:  Attributes{Colors: "hexacode", Family: "color"},
				Forward:     Forward{Colors: true},
				Visibility:  true,
			},
			{
				ID:          "scarves",
				Label:       "Scarves",
				Channels:    []string{"scarf"},
				Modes:       append([]Mode{}, single...),
				DefaultMode: "Single",
				Attributes:  Attributes{Colors: "hexacode", Fabrics: "fabric"},
				Forward:     Forward{Colors: true, Material: true},
				Visibility:  true,
			},
			{
				ID:          "foundation",
				Label:       "Foundation",
				Channels:    []string{"foundation"},
				Modes:       append([]Mode{}, single...),
				DefaultMode: "Single",
				Attributes:  Attributes{Colors: "hexacode", Textures: "texture"},
				Forward:     Forward{Colors: true, Material: true},
				Visibility:  true,
			},
			{
				ID:          "eyeliner",
				Label:       "Eyeliner",
				Channels:    []string{"eyeliner"},
				Modes:       append([]Mode{}, single...),
				DefaultMode: "Single",
				Attributes:  Attributes{Colors: "hexacode"},
				Patterns:    6,
				Forward:     Forward{Colors: true, Pattern: true},
				Visibility:  true,
			},
		},
	}
}
