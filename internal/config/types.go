package config

import (
	"gopkg.in/yaml.v3"

	"github.com/unveels/tryon/internal/domain/catalog"
)

// Config is the try-on rule table: the categories a session may mount and
// the known texture and fabric vocabularies their options are filtered
// through.
type Config struct {
	Version    string           `yaml:"version" validate:"required,semver"`
	Textures   []catalog.Option `yaml:"textures,omitempty" validate:"omitempty,dive"`
	Fabrics    []catalog.Option `yaml:"fabrics,omitempty" validate:"omitempty,dive"`
	Categories []Category       `yaml:"categories" validate:"required,min=1,dive"`
}

// Category declares one try-on category.
type Category struct {
	ID          string     `yaml:"id" validate:"required,category_id"`
	Label       string     `yaml:"label" validate:"required,max=64"`
	Channels    []string   `yaml:"channels" validate:"required,min=1,dive,channel_name"`
	Modes       []Mode     `yaml:"modes" validate:"required,min=1,max=3,dive"`
	DefaultMode string     `yaml:"default_mode" validate:"required,shade_mode"`
	Attributes  Attributes `yaml:"attributes"`
	Shapes      int        `yaml:"shapes,omitempty" validate:"min=0,max=64"`
	Patterns    int        `yaml:"patterns,omitempty" validate:"min=0,max=64"`
	Forward     Forward    `yaml:"forward"`
	// Visibility couples channel visibility to the selection. Defaults to true.
	Visibility bool `yaml:"visibility"`
}

// Mode maps a shade mode name to its color capacity.
type Mode struct {
	Name      string `yaml:"name" validate:"required,shade_mode"`
	MaxColors int    `yaml:"max_colors" validate:"required,min=1,max=3"`
}

// Attributes names the product attribute each option row is read from.
type Attributes struct {
	Colors   string `yaml:"colors,omitempty" validate:"omitempty,attribute_kind"`
	Textures string `yaml:"textures,omitempty" validate:"omitempty,attribute_kind"`
	Fabrics  string `yaml:"fabrics,omitempty" validate:"omitempty,attribute_kind"`
	Family   string `yaml:"family,omitempty" validate:"omitempty,attribute_kind"`
}

// Forward selects which channel fields the category drives.
type Forward struct {
	Colors   bool `yaml:"colors"`
	Material bool `yaml:"material"`
	Pattern  bool `yaml:"pattern"`
	Mode     bool `yaml:"mode"`
}

// UnmarshalYAML decodes a category, defaulting visibility coupling to on.
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	type rawCategory Category
	raw := rawCategory{Visibility: true}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*c = Category(raw)
	return nil
}

// Category looks up a category by id.
func (c *Config) Category(id string) (Category, bool) {
	for _, category := range c.Categories {
		if category.ID == id {
			return category, true
		}
	}
	return Category{}, false
}

// CategoryIDs lists the declared category ids in table order.
func (c *Config) CategoryIDs() []string {
	ids := make([]string, 0, len(c.Categories))
	for _, category := range c.Categories {
		ids = append(ids, category.ID)
	}
	return ids
}
