package cli

import (
	"context"
	"fmt"

	"todo/internal/errors"
)

// RegisterCommand creates an account
type RegisterCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRegisterCommand creates a new register command handler
func NewRegisterCommand(app *App) *RegisterCommand {
	return &RegisterCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the register command
func (c *RegisterCommand) Execute(ctx context.Context, args []string) error {
	username, password, err := credentials("register", args)
	if err != nil {
		return err
	}
	return c.Register(ctx, username, password)
}

// Register creates the account without logging in.
func (c *RegisterCommand) Register(ctx context.Context, username, password string) error {
	user, err := c.app.session.Register(ctx, username, password)
	if err != nil {
		return c.errorHandler.Handle("register", err)
	}
	fmt.Fprintf(c.app.out, "User registered: %s\n", user.Username)
	return nil
}

// LoginCommand attaches a user to the session
type LoginCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	username, password, err := credentials("login", args)
	if err != nil {
		return err
	}
	return c.Login(ctx, username, password)
}

// Login authenticates and reports who is logged in.
func (c *LoginCommand) Login(ctx context.Context, username, password string) error {
	user, err := c.app.session.Login(ctx, username, password)
	if err != nil {
		return c.errorHandler.Handle("log in", err)
	}
	fmt.Fprintf(c.app.out, "Logged in as %s\n", user.Username)
	return nil
}

// LogoutCommand detaches the session's user
type LogoutCommand struct {
	app *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app}
}

// Execute runs the logout command
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errors.NewInvalidInputError("command", "logout", "usage: logout")
	}
	if !c.app.session.IsLoggedIn() {
		fmt.Fprintln(c.app.out, "Not logged in")
		return nil
	}
	c.app.session.Logout()
	fmt.Fprintln(c.app.out, "Logged out")
	return nil
}

// WhoamiCommand prints the logged-in user
type WhoamiCommand struct {
	app *App
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{app: app}
}

// Execute runs the whoami command
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	user, ok := c.app.session.User()
	if !ok {
		fmt.Fprintln(c.app.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(c.app.out, "%s (id %d)\n", user.Username, user.ID)
	return nil
}

// HelpCommand prints the registry usage
type HelpCommand struct {
	app *App
}

// NewHelpCommand creates a new help command handler
func NewHelpCommand(app *App) *HelpCommand {
	return &HelpCommand{app: app}
}

// Execute runs the help command
func (c *HelpCommand) Execute(ctx context.Context, args []string) error {
	fmt.Fprintln(c.app.out, c.app.registry.GetUsage())
	return nil
}
