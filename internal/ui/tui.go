// Package ui provides the full-screen terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/session"
)

// Options configures the TUI.
type Options struct {
	Theme      string
	DateFormat string
	Now        func() time.Time
	Input      io.Reader
	Output     io.Writer
}

func (o Options) withDefaults() Options {
	if o.DateFormat == "" {
		o.DateFormat = "2006-01-02"
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Input == nil {
		o.Input = os.Stdin
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	return o
}

// Run starts the TUI over s and blocks until the user quits.
func Run(ctx context.Context, s *session.Session, opts Options) error {
	opts = opts.withDefaults()
	if !IsTTY(opts.Output) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := NewModel(ctx, s, opts)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(opts.Input),
		tea.WithOutput(opts.Output),
	)
	_, err := program.Run()
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
