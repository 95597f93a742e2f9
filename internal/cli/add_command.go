package cli

import (
	"context"
	"fmt"
	"strings"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	priority := fs.String("priority", "", "High, Medium or Low (default Medium)")
	due := fs.String("due", "", "due date as YYYY-MM-DD (default today)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	return c.Add(ctx, strings.Join(fs.Args(), " "), *priority, *due)
}

// Add creates a task for the session's user.
func (c *AddCommand) Add(ctx context.Context, description, priority, due string) error {
	task, err := c.app.session.AddTask(ctx, description, priority, due)
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	fmt.Fprintf(c.app.out, "Added task %d: %s\n", task.ID, formatTask(task, c.app.dateFormat()))
	return nil
}
