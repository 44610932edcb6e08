package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/domain/selection"
	tryonerrors "github.com/unveels/tryon/pkg/errors"
)

// ValidateConfig performs schema and cross-field validation on the rule table.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return tryonerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if err := validateKnown("textures", cfg.Textures); err != nil {
		return err
	}
	if err := validateKnown("fabrics", cfg.Fabrics); err != nil {
		return err
	}

	ids := make(map[string]int, len(cfg.Categories))
	owners := make(map[string]string)
	for i, category := range cfg.Categories {
		if _, exists := ids[category.ID]; exists {
			return tryonerrors.NewValidationError(fieldForCategory(i, "id"), fmt.Sprintf("duplicate category id %q", category.ID), nil)
		}
		ids[category.ID] = i

		for _, channel := range category.Channels {
			if owner, taken := owners[channel]; taken {
				return tryonerrors.NewValidationError(fieldForCategory(i, "channels"), fmt.Sprintf("channel %q is already owned by %q", channel, owner), nil)
			}
			owners[channel] = category.ID
		}

		if err := ValidateCategory(cfg, i); err != nil {
			return err
		}
	}

	return nil
}

// ValidateCategory checks the per-category rules that span several fields.
func ValidateCategory(cfg *Config, index int) error {
	category := cfg.Categories[index]

	seen := make(map[selection.ShadeMode]struct{}, len(category.Modes))
	previous := 0
	for j, mode := range category.Modes {
		name, err := selection.ParseShadeMode(mode.Name)
		if err != nil {
			return tryonerrors.NewValidationError(fieldForMode(index, j, "name"), err.Error(), err)
		}
		if _, dup := seen[name]; dup {
			return tryonerrors.NewValidationError(fieldForMode(index, j, "name"), fmt.Sprintf("duplicate shade mode %q", name), nil)
		}
		seen[name] = struct{}{}
		if mode.MaxColors <= previous {
			return tryonerrors.NewValidationError(fieldForMode(index, j, "max_colors"), "capacities must increase with each mode", nil)
		}
		previous = mode.MaxColors
	}

	defaultMode, err := selection.ParseShadeMode(category.DefaultMode)
	if err != nil {
		return tryonerrors.NewValidationError(fieldForCategory(index, "default_mode"), err.Error(), err)
	}
	if _, ok := seen[defaultMode]; !ok {
		return tryonerrors.NewValidationError(fieldForCategory(index, "default_mode"), fmt.Sprintf("mode %q is not in the mode table", category.DefaultMode), nil)
	}

	attrs := category.Attributes
	if attrs.Textures != "" && attrs.Fabrics != "" {
		return tryonerrors.NewValidationError(fieldForCategory(index, "attributes"), "textures and fabrics both drive the material index; pick one", nil)
	}
	if category.Shapes > 0 && category.Patterns > 0 {
		return tryonerrors.NewValidationError(fieldForCategory(index, "shapes"), "shapes and patterns both drive the pattern index; pick one", nil)
	}
	if attrs.Textures != "" && len(cfg.Textures) == 0 {
		return tryonerrors.NewValidationError(fieldForCategory(index, "attributes.textures"), "no known textures are declared", nil)
	}
	if attrs.Fabrics != "" && len(cfg.Fabrics) == 0 {
		return tryonerrors.NewValidationError(fieldForCategory(index, "attributes.fabrics"), "no known fabrics are declared", nil)
	}

	return nil
}

func validateKnown(field string, options []catalog.Option) error {
	seen := make(map[string]struct{}, len(options))
	for i, option := range options {
		if _, dup := seen[option.Value]; dup {
			return tryonerrors.NewValidationError(fmt.Sprintf("%s[%d].value", field, i), fmt.Sprintf("duplicate value %q", option.Value), nil)
		}
		seen[option.Value] = struct{}{}
	}
	return nil
}

// convertValidationError normalizes validator errors into validation errors
// with yaml-style field paths.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return tryonerrors.NewValidationError(field, msg, err)
	}

	return tryonerrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForCategory(index int, field string) string {
	return fmt.Sprintf("categories[%d].%s", index, field)
}

func fieldForMode(category, mode int, field string) string {
	return fmt.Sprintf("categories[%d].modes[%d].%s", category, mode, field)
}
