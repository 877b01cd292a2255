package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/gatefold/internal/config"
	"github.com/aretw0/gatefold/internal/logging"
)

// CreateLogger configures the application logger from config.
// With quiet set, only warnings and errors are logged.
func CreateLogger(cfg config.LogConfig, quiet bool) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if quiet && level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	return logging.New(level, cfg.Format), nil
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
