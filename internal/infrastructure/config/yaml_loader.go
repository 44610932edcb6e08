package config

import (
	"context"
	"errors"
	"os"
	"sort"

	cfgpkg "github.com/unveels/tryon/internal/config"
	"github.com/unveels/tryon/internal/domain/selection"
	"github.com/unveels/tryon/internal/ports"
	apperrors "github.com/unveels/tryon/pkg/errors"
)

// YAMLLoader reads rule tables from disk and converts them into controller
// rules, logging each stage.
type YAMLLoader struct {
	logger ports.Logger
}

func NewYAMLLoader(logger ports.Logger) *YAMLLoader {
	return &YAMLLoader{logger: logger}
}

// Load returns the validated rule table at path. An empty path selects the
// built-in table.
func (l *YAMLLoader) Load(ctx context.Context, path string) (*cfgpkg.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if path == "" {
		l.logDebug(ctx, "using built-in rule table", nil)
		return cfgpkg.Default(), nil
	}

	l.logDebug(ctx, "loading rule table", map[string]interface{}{"path": path})

	cfg, err := cfgpkg.ParseConfig(path)
	if err != nil {
		l.logError(ctx, "failed to load rule table", err, map[string]interface{}{"path": path})
		return nil, err
	}

	l.logInfo(ctx, "rule table loaded", map[string]interface{}{"path": path, "categories": len(cfg.Categories)})
	return cfg, nil
}

// Rules loads the table at path and converts it into controller rules.
func (l *YAMLLoader) Rules(ctx context.Context, path string) ([]selection.Rules, error) {
	cfg, err := l.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	rules, err := cfg.Rules()
	if err != nil {
		l.logError(ctx, "failed to convert rule table", err, map[string]interface{}{"path": path})
		return nil, apperrors.NewValidationError("categories", err.Error(), err)
	}
	return rules, nil
}

// Validate checks that path exists and holds a valid rule table.
func (l *YAMLLoader) Validate(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		l.logError(ctx, "rule table stat failed", err, map[string]interface{}{"path": path})
		return apperrors.NewParseError(path, 0, err)
	}
	if info.IsDir() {
		err := errors.New("path is a directory")
		l.logError(ctx, "rule table path is a directory", err, map[string]interface{}{"path": path})
		return apperrors.NewParseError(path, 0, err)
	}
	_, err = l.Load(ctx, path)
	return err
}

func (l *YAMLLoader) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(ctx, msg, flattenFields(fields)...)
}

func (l *YAMLLoader) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Info(ctx, msg, flattenFields(fields)...)
}

func (l *YAMLLoader) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	payload := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["error"] = err
	l.logger.Error(ctx, msg, flattenFields(payload)...)
}

func flattenFields(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}
