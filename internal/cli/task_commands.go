package cli

import (
	"context"
	"fmt"
	"strconv"

	"todo/internal/errors"
)

// taskTarget is what complete and delete act on: one id, or every task
// with an exact description.
type taskTarget struct {
	id          int64
	description string
	byText      bool
}

func parseTaskTarget(command string, args []string) (taskTarget, error) {
	fs := newFlagSet(command)
	description := fs.String("description", "", "act on every task with exactly this description")
	if err := parseFlags(fs, args); err != nil {
		return taskTarget{}, err
	}

	usage := fmt.Sprintf("usage: %s <id> or %s --description <text>", command, command)
	if fs.Changed("description") {
		if fs.NArg() > 0 {
			return taskTarget{}, errors.NewInvalidInputError("command", command, usage)
		}
		return taskTarget{description: *description, byText: true}, nil
	}
	if fs.NArg() != 1 {
		return taskTarget{}, errors.NewInvalidInputError("command", command, usage)
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return taskTarget{}, errors.NewInvalidInputError("id", fs.Arg(0), "must be a positive task id")
	}
	return taskTarget{id: id}, nil
}

// CompleteCommand handles the complete command
type CompleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the complete command
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	target, err := parseTaskTarget("complete", args)
	if err != nil {
		return err
	}
	if target.byText {
		return c.ByDescription(ctx, target.description)
	}
	return c.ByID(ctx, target.id)
}

// ByID completes one task.
func (c *CompleteCommand) ByID(ctx context.Context, id int64) error {
	task, err := c.app.session.CompleteTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("complete task", err)
	}
	fmt.Fprintf(c.app.out, "Completed task %d: %s\n", task.ID, formatTask(task, c.app.dateFormat()))
	return nil
}

// ByDescription completes every task whose description matches exactly.
func (c *CompleteCommand) ByDescription(ctx context.Context, description string) error {
	n, err := c.app.session.CompleteByDescription(ctx, description)
	if err != nil {
		return c.errorHandler.Handle("complete task", err)
	}
	reportMatches(c.app, "Completed", description, n)
	return nil
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	target, err := parseTaskTarget("delete", args)
	if err != nil {
		return err
	}
	if target.byText {
		return c.ByDescription(ctx, target.description)
	}
	return c.ByID(ctx, target.id)
}

// ByID deletes one task.
func (c *DeleteCommand) ByID(ctx context.Context, id int64) error {
	if err := c.app.session.DeleteTask(ctx, id); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	fmt.Fprintf(c.app.out, "Deleted task %d\n", id)
	return nil
}

// ByDescription deletes every task whose description matches exactly.
func (c *DeleteCommand) ByDescription(ctx context.Context, description string) error {
	n, err := c.app.session.DeleteByDescription(ctx, description)
	if err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	reportMatches(c.app, "Deleted", description, n)
	return nil
}

func reportMatches(app *App, verb, description string, n int64) {
	switch n {
	case 0:
		fmt.Fprintf(app.out, "No task matching %q\n", description)
	case 1:
		fmt.Fprintf(app.out, "%s %q\n", verb, description)
	default:
		fmt.Fprintf(app.out, "%s %d tasks matching %q\n", verb, n, description)
	}
}
