package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"todo/internal/api"
	"todo/internal/config"
	"todo/internal/errors"
	"todo/internal/session"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application
type App struct {
	api      api.API
	session  *session.Session
	config   *config.Config
	registry *CommandRegistry

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewAppWithConfig creates a new CLI application instance with the given configuration
func NewAppWithConfig(apiInstance api.API, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:     apiInstance,
		session: session.New(apiInstance),
		config:  cfg,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetIO replaces the application's input and output streams.
func (a *App) SetIO(in io.Reader, out, errOut io.Writer) {
	a.in = in
	a.out = out
	a.errOut = errOut
}

// Session returns the session shared by every command of this app.
func (a *App) Session() *session.Session {
	return a.session
}

// Config returns the effective configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Run executes one registry command, e.g. []string{"add", "Buy milk"}.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "", a.registry.GetUsage())
	}
	ctx, cancel := a.commandContext(ctx)
	defer cancel()
	return a.registry.Execute(ctx, strings.ToLower(args[0]), args[1:])
}

// commandContext bounds a single command by the application timeout.
func (a *App) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.appTimeout())
}

func (a *App) appTimeout() time.Duration {
	if a.config != nil && a.config.Application.Timeout > 0 {
		return a.config.Application.Timeout
	}
	return 60 * time.Second
}

func (a *App) dateFormat() string {
	if a.config != nil && a.config.Display.DateFormat != "" {
		return a.config.Display.DateFormat
	}
	return "2006-01-02"
}
