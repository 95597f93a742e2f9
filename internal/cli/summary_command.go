package cli

import (
	"context"
	"fmt"
)

// SummaryCommand prints an overview of the session user's tasks
type SummaryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the summary command
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	summary, err := c.app.session.Summary(ctx)
	if err != nil {
		return c.errorHandler.Handle("summarize tasks", err)
	}

	fmt.Fprintf(c.app.out, "Total: %d  Pending: %d  Completed: %d  Overdue: %d\n",
		summary.Total, summary.Pending, summary.Completed, summary.Overdue)
	if summary.NextDue != nil {
		fmt.Fprintf(c.app.out, "Next due: %s\n", formatTask(summary.NextDue, c.app.dateFormat()))
	}
	return nil
}
