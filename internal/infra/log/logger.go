// Package log builds the process-wide slog.Logger from configuration.
package log

import (
	"log/slog"
	"os"
	"strings"

	"shelfmark/config"

	"go.uber.org/fx"
)

// Params defines the dependencies for creating a logger.
type Params struct {
	fx.In

	Config *config.Config
}

// New creates a slog.Logger according to the log settings. Pretty mode
// emits human-readable text for local development; otherwise JSON.
func New(params Params) *slog.Logger {
	cfg := params.Config

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Env.Log.Level),
		AddSource: cfg.Env.Debug,
	}

	var handler slog.Handler
	if cfg.Env.Log.Pretty {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.Env.ServiceName),
		slog.String("env", cfg.Env.Env),
	)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
