// Package scenario replays scripted UI actions against a session and checks
// the resulting store and channel state.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/unveels/tryon/internal/application/session"
	"github.com/unveels/tryon/internal/config"
	apperrors "github.com/unveels/tryon/pkg/errors"
)

// Scenario is a named list of steps.
type Scenario struct {
	Name        string `yaml:"name" validate:"required,max=100"`
	Description string `yaml:"description,omitempty"`
	// Products is a product fixture path, relative to the scenario file.
	Products string `yaml:"products,omitempty"`
	Strict   bool   `yaml:"strict,omitempty"`
	Steps    []Step `yaml:"steps" validate:"required,min=1,dive"`

	dir string
}

// Step is either one UI action or one expectation.
type Step struct {
	Action   session.ActionKind `yaml:"action,omitempty" validate:"omitempty,oneof=mount unmount toggle_color toggle_texture toggle_fabric toggle_shape toggle_pattern set_mode set_family select_product clear"`
	Category string             `yaml:"category,omitempty" validate:"omitempty,category_id"`
	Product  string             `yaml:"product,omitempty"`
	Token    string             `yaml:"token,omitempty"`
	Expect   *Expectation       `yaml:"expect,omitempty"`
}

// Expectation lists the values to check. Absent fields are not checked.
type Expectation struct {
	Store     *StoreExpectation             `yaml:"store,omitempty"`
	Channels  map[string]ChannelExpectation `yaml:"channels,omitempty" validate:"omitempty,dive,keys,channel_name,endkeys"`
	Violation *bool                         `yaml:"violation,omitempty"`
	Mounted   *string                       `yaml:"mounted,omitempty"`
}

// StoreExpectation checks the mounted store.
type StoreExpectation struct {
	Colors      []string `yaml:"colors,omitempty"`
	Texture     *string  `yaml:"texture,omitempty"`
	Fabric      *string  `yaml:"fabric,omitempty"`
	Shape       *string  `yaml:"shape,omitempty"`
	Pattern     *string  `yaml:"pattern,omitempty"`
	ShadeMode   *string  `yaml:"shade_mode,omitempty"`
	ColorFamily *string  `yaml:"color_family,omitempty"`
}

// ChannelExpectation checks one aggregator channel. A material or pattern of
// -1 expects the index to be cleared.
type ChannelExpectation struct {
	Visible  *bool    `yaml:"visible,omitempty"`
	Colors   []string `yaml:"colors,omitempty"`
	Material *int     `yaml:"material,omitempty"`
	Pattern  *int     `yaml:"pattern,omitempty"`
	Mode     *string  `yaml:"mode,omitempty"`
}

// IsAction reports whether the step dispatches an action.
func (s Step) IsAction() bool { return s.Action != "" }

// ToAction converts an action step.
func (s Step) ToAction() session.Action {
	return session.Action{Kind: s.Action, Category: s.Category, Product: s.Product, Token: s.Token}
}

// ProductsPath resolves the product fixture path against the scenario file.
func (s *Scenario) ProductsPath() string {
	if s.Products == "" || filepath.IsAbs(s.Products) {
		return s.Products
	}
	return filepath.Join(s.dir, s.Products)
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	sc, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	sc.dir = filepath.Dir(path)
	return sc, nil
}

// Parse decodes and validates scenario data. source names the document in errors.
func Parse(source string, data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, apperrors.NewParseError(source, config.ExtractLine(err), err)
	}
	if err := Validate(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario schema and the per-step action/expect rules.
func Validate(sc *Scenario) error {
	if sc == nil {
		return apperrors.NewValidationError("scenario", "scenario is nil", nil)
	}
	if err := config.GetValidator().Struct(sc); err != nil {
		return convertValidationError(err)
	}

	for i, step := range sc.Steps {
		field := fmt.Sprintf("steps[%d]", i)
		switch {
		case step.IsAction() && step.Expect != nil:
			return apperrors.NewValidationError(field, "a step is either an action or an expectation", nil)
		case !step.IsAction() && step.Expect == nil:
			return apperrors.NewValidationError(field, "step has neither action nor expect", nil)
		case step.Action == session.ActionMount && step.Category == "":
			return apperrors.NewValidationError(field+".category", "mount requires a category", nil)
		case step.Action == session.ActionSelectProduct && step.Product == "":
			return apperrors.NewValidationError(field+".product", "select_product requires a product", nil)
		case needsToken(step.Action) && step.Token == "":
			return apperrors.NewValidationError(field+".token", fmt.Sprintf("%s requires a token", step.Action), nil)
		}
	}
	return nil
}

func needsToken(kind session.ActionKind) bool {
	switch kind {
	case session.ActionToggleColor, session.ActionToggleTexture, session.ActionToggleFabric,
		session.ActionToggleShape, session.ActionTogglePattern, session.ActionSetMode:
		return true
	default:
		return false
	}
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		return apperrors.NewValidationError(ve.Namespace(), fmt.Sprintf("%s failed validation for tag '%s'", ve.Namespace(), ve.Tag()), err)
	}
	return apperrors.NewValidationError("scenario", err.Error(), err)
}
