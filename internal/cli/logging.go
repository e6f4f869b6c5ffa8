package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// openLogger opens the append-only game log. With verbose set, records are
// mirrored to stderr and debug records are kept.
func openLogger(cfg *Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = f
	level := slog.LevelInfo
	if cfg.Verbose {
		w = io.MultiWriter(f, stderr)
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}
