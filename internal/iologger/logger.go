// Package iologger configures the process-wide slog logger from the
// log section of the configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnoccur/pkg/config"
)

// logFile is the destination file name inside the log directory.
const logFile = "gnoccur.log"

// Init builds a logger from cfg and installs it as the slog default.
// The bootstrap calls it twice: once with defaults before the config
// file is read, and again with appendLog true once the real settings
// are known, so the second pass does not wipe what the first one
// wrote.
func Init(logDir string, cfg config.LogConfig, appendLog bool) error {
	writer, err := destination(logDir, cfg.Destination, appendLog)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(newHandler(writer, cfg)))
	return nil
}

func destination(
	logDir, dest string,
	appendLog bool,
) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "file":
		logPath := filepath.Join(logDir, logFile)
		flags := os.O_CREATE | os.O_WRONLY
		if appendLog {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		file, err := os.OpenFile(logPath, flags, 0644)
		if err != nil {
			return nil, CreateLogFileError(logPath, err)
		}
		return file, nil
	default:
		return os.Stderr, nil
	}
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	switch cfg.Format {
	case "text", "tint":
		// tint falls back to the plain text handler until a colored
		// handler is wired in.
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
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
