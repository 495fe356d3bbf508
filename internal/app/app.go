package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/mppimport/internal/ctxlog"
	"github.com/vk/mppimport/internal/extract"
	"github.com/vk/mppimport/internal/snapshot"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  *snapshot.Loader
	builder *extract.Builder
}

// NewApp creates an App. Models without an output path are written to outW;
// logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loader:  snapshot.NewLoader(),
		builder: extract.NewBuilder(snapshot.Resolver{}, nil),
	}
}

// Context returns ctx carrying the app's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
