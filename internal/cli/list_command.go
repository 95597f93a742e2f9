package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"todo/internal/domain"
	"todo/internal/errors"
)

// Output formats accepted by list.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// ListOptions selects which tasks list shows and how.
type ListOptions struct {
	Status string
	Sort   string
	Format string
}

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	opts := ListOptions{}
	fs.StringVar(&opts.Status, "status", "", "pending or completed")
	fs.StringVar(&opts.Sort, "sort", "", "created, due or priority")
	fs.StringVar(&opts.Format, "format", "", "table, csv or json")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return errors.NewInvalidInputError("command", "list", "list takes no arguments")
	}
	return c.List(ctx, opts)
}

// List prints the session user's tasks.
func (c *ListCommand) List(ctx context.Context, opts ListOptions) error {
	if opts.Sort == "" {
		opts.Sort = c.app.config.Commands.ListDefaultSort
	}
	if opts.Format == "" {
		opts.Format = c.app.config.Commands.ListDefaultFormat
	}

	filter := domain.TaskFilter{Order: domain.TaskOrder(strings.ToLower(opts.Sort))}
	if opts.Status != "" {
		status, ok := domain.ParseStatus(opts.Status)
		if !ok {
			return errors.NewInvalidInputError("status", opts.Status, "must be pending or completed")
		}
		filter.Status = &status
	}

	format := strings.ToLower(opts.Format)
	switch format {
	case FormatTable, FormatCSV, FormatJSON:
	default:
		return errors.NewInvalidInputError("format", opts.Format, "must be table, csv or json")
	}

	tasks, err := c.app.session.ListTasks(ctx, filter)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	switch format {
	case FormatCSV:
		return c.printCSV(c.app.out, tasks)
	case FormatJSON:
		return c.printJSON(c.app.out, tasks)
	default:
		return c.printTable(c.app.out, tasks)
	}
}

func (c *ListCommand) printTable(w io.Writer, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return nil
	}

	now := timeNow()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDESCRIPTION\tPRIORITY\tDUE\tSTATUS")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s%s\t%s\n",
			t.ID, t.Description, t.Priority, t.DueDate.Format(c.app.dateFormat()), overdueMarker(t, now), t.Status)
	}
	return tw.Flush()
}

func (c *ListCommand) printCSV(w io.Writer, tasks []*domain.Task) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "description", "priority", "due_date", "status"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, t := range tasks {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Description,
			string(t.Priority),
			t.DueDateString(),
			string(t.Status),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

type taskJSON struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	Overdue     bool   `json:"overdue"`
}

func (c *ListCommand) printJSON(w io.Writer, tasks []*domain.Task) error {
	now := timeNow()
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskJSON{
			ID:          t.ID,
			Description: t.Description,
			Priority:    string(t.Priority),
			DueDate:     t.DueDateString(),
			Status:      string(t.Status),
			Overdue:     t.IsOverdue(now),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
