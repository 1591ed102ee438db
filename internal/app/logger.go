package app

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ssegura/abasto/internal/config"
)

// newLogger returns a slog.Logger writing to a file under the state
// directory. The TUI owns stdout, so nothing may log there.
func newLogger(cfg config.Config, dir string) (*slog.Logger, func() error, error) {
	path := filepath.Join(dir, "abasto.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(f, nil)
	} else {
		handler = slog.NewTextHandler(f, nil)
	}
	return slog.New(handler), f.Close, nil
}
