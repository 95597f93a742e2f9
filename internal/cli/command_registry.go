package cli

import (
	"context"
	"sort"
	"strings"

	"todo/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	// Register all commands
	registry.Register("register", NewRegisterCommand(app))
	registry.Register("login", NewLoginCommand(app))
	registry.Register("logout", NewLogoutCommand(app))
	registry.Register("whoami", NewWhoamiCommand(app))
	registry.Register("add", NewAddCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("complete", NewCompleteCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("summary", NewSummaryCommand(app))
	registry.Register("help", NewHelpCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Names lists the registered command names in order.
func (r *CommandRegistry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command, try help")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	return "usage: " + strings.Join([]string{
		"register <username> [password]",
		"login <username> [password]",
		"logout",
		"whoami",
		"add <description> [--priority High|Medium|Low] [--due YYYY-MM-DD]",
		"list [--status pending|completed] [--sort created|due|priority] [--format table|csv|json]",
		"complete <id> | complete --description <text>",
		"delete <id> | delete --description <text>",
		"summary",
		"quit",
	}, "\n       ")
}
