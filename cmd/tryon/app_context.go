package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unveels/tryon/internal/application/session"
	"github.com/unveels/tryon/internal/config"
	"github.com/unveels/tryon/internal/domain/render"
	"github.com/unveels/tryon/internal/domain/selection"
	infracatalog "github.com/unveels/tryon/internal/infrastructure/catalog"
	infraconfig "github.com/unveels/tryon/internal/infrastructure/config"
	"github.com/unveels/tryon/internal/infrastructure/events"
	"github.com/unveels/tryon/internal/infrastructure/logging"
	"github.com/unveels/tryon/internal/ports"
)

// AppContext bundles long-lived services created before a command runs.
type AppContext struct {
	Logger       ports.Logger
	Events       *events.LoggingPublisher
	Loader       *infraconfig.YAMLLoader
	ConfigPath   string
	ProductsPath string
	Strict       bool

	ready bool
}

// init resolves flags against the environment and builds the shared
// services. Flags win over TRYON_* variables.
func (a *AppContext) init(cmd *cobra.Command, flags *rootFlags) error {
	if a.ready {
		return nil
	}

	env, err := config.ParseEnv()
	if err != nil {
		return err
	}

	level := env.LogLevel
	if flags.verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Writer:        cmd.ErrOrStderr(),
		Level:         level,
		HumanReadable: flags.logHuman || env.LogHuman,
		Layer:         "cli",
	})
	if err != nil {
		return err
	}

	a.Logger = logger
	a.Events = events.NewLoggingPublisher(logger.With("component", "events"))
	a.Loader = infraconfig.NewYAMLLoader(logger.With("component", "config_loader"))
	a.ConfigPath = flags.configPath
	if a.ConfigPath == "" {
		a.ConfigPath = env.ConfigPath
	}
	a.ProductsPath = flags.productsPath
	a.Strict = flags.strict || env.Strict
	a.ready = true
	return nil
}

// CommandContext returns a correlated context and a logger scoped to the
// named command.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.EnsureCorrelationID(ctx)
	return ctx, logging.OrNoOp(a.Logger).With("command", component)
}

// Rules loads the configured rule table.
func (a *AppContext) Rules(ctx context.Context) ([]selection.Rules, error) {
	return a.Loader.Rules(ctx, a.ConfigPath)
}

// Products loads the product fixture at path, or at the --products path when
// path is empty. A nil source is returned when neither is set.
func (a *AppContext) Products(path string) (ports.ProductSource, error) {
	if path == "" {
		path = a.ProductsPath
	}
	if path == "" {
		return nil, nil
	}
	source, err := infracatalog.LoadYAML(path, a.Logger.With("component", "catalog"))
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return source, nil
}

// sessionConfig describes one session to build.
type sessionConfig struct {
	Products ports.ProductSource
	Logger   ports.Logger
	Engines  []render.Engine
	Strict   bool
}

// NewSession builds a session over the configured rule table.
func (a *AppContext) NewSession(ctx context.Context, cfg sessionConfig) (*session.Session, error) {
	rules, err := a.Rules(ctx)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = a.Logger
	}
	return session.New(rules, session.Options{
		Products: cfg.Products,
		Logger:   logger,
		Events:   a.Events,
		Engines:  cfg.Engines,
		Strict:   cfg.Strict,
	})
}
