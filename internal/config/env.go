package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the process settings read from the environment. Command-line
// flags take precedence over these values.
type Env struct {
	ConfigPath string `env:"TRYON_CONFIG"`
	LogLevel   string `env:"TRYON_LOG_LEVEL" envDefault:"info"`
	LogHuman   bool   `env:"TRYON_LOG_HUMAN"`
	Strict     bool   `env:"TRYON_STRICT"`
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ParseEnvFrom loads Env from vars instead of the process environment.
func ParseEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
