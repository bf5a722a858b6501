package logger

import (
	"io"
	"log/slog"
	"os"

	"accounts-server/internal/shared/config"
)

// Init installs the process-wide slog logger described by cfg and returns it.
func Init(cfg *config.Config) *slog.Logger {
	if cfg == nil {
		panic("config must be initialized before logger")
	}

	logger := New(os.Stdout, cfg.Logging)
	slog.SetDefault(logger)

	logger.Debug("Logger initialized",
		"component", "logger",
		"level", cfg.Logging.Level,
		"json_format", cfg.Logging.JSONFormat,
		"environment", cfg.Server.Environment,
	)
	return logger
}

// New builds a JSON or text logger writing to w.
func New(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.JSONFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLogLevel accepts slog level names in any case. Anything else is debug.
func parseLogLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelDebug
	}
	return level
}
