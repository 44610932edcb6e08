package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	tryonerrors "github.com/unveels/tryon/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseConfig loads a rule table from disk, validates it, and returns the resulting model.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tryonerrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates a rule table. source names the document in errors.
func Parse(source string, data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, tryonerrors.NewParseError(source, extractLine(err), err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load returns the rule table at path, or the built-in table when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return ParseConfig(path)
}

// ExtractLine returns the line number reported in a yaml.v3 error, or 0.
func ExtractLine(err error) int {
	return extractLine(err)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
