package config

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/domain/selection"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern      = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	categoryIDPattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	channelNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_.-]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("category_id", func(fl validator.FieldLevel) bool {
			return categoryIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("channel_name", func(fl validator.FieldLevel) bool {
			return channelNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("shade_mode", func(fl validator.FieldLevel) bool {
			_, err := selection.ParseShadeMode(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("attribute_kind", func(fl validator.FieldLevel) bool {
			_, err := catalog.ParseAttributeKind(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
