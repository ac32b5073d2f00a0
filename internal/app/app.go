package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/mei-archive/meilint/internal/config"
)

// App encapsulates the linter's dependencies, configuration and lifecycle.
// The report goes to outW, logs go to errW.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp constructs the application with its own isolated logger.
func NewApp(outW, errW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// resolveModel layers the configuration sources: built-in defaults, then the
// config file, then explicit CLI flags.
func (a *App) resolveModel(ctx context.Context) (*config.Model, error) {
	model := config.Default()

	if a.config.ConfigFile != "" {
		loaded, err := a.loader.Load(ctx, a.config.ConfigFile)
		if err != nil {
			return nil, err
		}
		model = loaded
	}

	if a.config.Path != "" {
		model.Path = a.config.Path
	}
	if a.config.Workers != nil {
		model.Workers = *a.config.Workers
	}
	if a.config.Extensions != nil {
		model.Extensions = config.NormalizeExtensions(a.config.Extensions)
	}
	if a.config.CheckNaming != nil {
		model.CheckNaming = *a.config.CheckNaming
	}
	if a.config.CheckDuplicates != nil {
		model.CheckDuplicates = *a.config.CheckDuplicates
	}

	return model, nil
}
