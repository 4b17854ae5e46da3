package app

import (
	"io"
	"log/slog"

	"github.com/vk/manifreeze/internal/config"
	"github.com/vk/manifreeze/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader config.Loader
	config *Config
	ledger *registry.Ledger
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. outW receives the
// lock document when no output path is configured; logW receives log
// output.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		loader: loader,
		config: appConfig,
	}
}
