package startup

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lux-bot/lux/internal/application"
	"github.com/lux-bot/lux/internal/env"
	"github.com/lux-bot/lux/internal/process"
)

// Options are the parsed command-line inputs.
type Options struct {
	Production            bool
	ConfigPath            string
	CogConfigPath         string
	EnvPath               string
	DisableDebugExtraInit bool
}

// App is the two-phase lifecycle the entry point drives.
type App interface {
	Init() error
	Run() error
}

// AppFactory builds the application from the resolved inputs.
type AppFactory func(application.Options) (App, error)

// Entry runs the startup pipeline.
type Entry struct {
	Logger    *zap.Logger
	Level     zap.AtomicLevel
	State     *process.State
	EnvLoader env.Loader
	NewApp    AppFactory
}

// NewEntry returns an Entry with a fresh State, the build-time env loader and
// the real application.
func NewEntry(logger *zap.Logger, level zap.AtomicLevel) *Entry {
	return &Entry{
		Logger:    logger,
		Level:     level,
		State:     process.NewState(),
		EnvLoader: env.DefaultLoader(),
		NewApp:    newApplication,
	}
}

func newApplication(opts application.Options) (App, error) {
	app, err := application.New(opts)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Run resolves mode, config, cog config and env in that order, then builds
// the application and calls Init followed by Run. It returns when the
// application stops or any step fails.
func (e *Entry) Run(opts Options) error {
	production := ResolveMode(e.Logger, e.Level, e.State, opts.Production)

	cfg, err := ResolveConfig(e.Logger, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}

	cogCfg, err := ResolveCogConfig(e.Logger, opts.CogConfigPath)
	if err != nil {
		return fmt.Errorf("resolve cog config: %w", err)
	}

	if err := ResolveEnv(e.Logger, e.EnvLoader, e.State, opts.EnvPath); err != nil {
		return fmt.Errorf("resolve env: %w", err)
	}

	app, err := e.NewApp(application.Options{
		Production:            production,
		Config:                cfg,
		CogConfig:             cogCfg,
		DisableDebugExtraInit: opts.DisableDebugExtraInit,
		State:                 e.State,
		Logger:                e.Logger,
		Level:                 e.Level,
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	if err := app.Run(); err != nil {
		return fmt.Errorf("application stopped: %w", err)
	}
	return nil
}
