package logger

import (
	"log/slog"
	"os"
)

// Init sets up the global logger with a JSON handler.
// Local environments log at debug, everything else at info.
func Init(env string) {
	level := slog.LevelInfo
	if env == "local" {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

