package logger

import (
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"

	"github.com/davidrq/proyecto-blog/internal/config"
)

// New builds the application logger from config. With no file configured it
// writes text to stdout; with a file it writes rotated JSON.
func New(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(writer, opts))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
