package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options selects where log records go.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means warn.
	Level string
	// File, when set, receives every record at debug level as JSON lines.
	File string
	// Verbose forces the terminal handler to debug level.
	Verbose bool
	// Writer is the terminal destination. Nil means stderr.
	Writer io.Writer
}

var level = new(slog.LevelVar)

// ParseLevel maps a configured level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// New builds a logger fanning out to the terminal and, optionally, a log
// file. The returned closer releases the file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	l, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Verbose || DebugEnabled() {
		l = slog.LevelDebug
	}
	level.Set(l)

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}),
	}
	closer := io.Closer(closerFunc(func() error { return nil }))

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = f
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(opts Options) (io.Closer, error) {
	logger, closer, err := New(opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closer, nil
}
