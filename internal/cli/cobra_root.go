package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"todo/internal/api"
	"todo/internal/config"
	"todo/internal/errors"
	"todo/internal/logging"
	"todo/internal/ui"
)

// Credential environment variables read when --username/--password are absent.
const (
	UsernameEnv = "TODO_USERNAME"
	PasswordEnv = "TODO_PASSWORD"
)

// Backend opens the API for a loaded configuration. The closer releases
// whatever the API holds open.
type Backend func(cfg *config.Config) (api.API, io.Closer, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	backend Backend
	app     *App
	closers []io.Closer

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(backend Backend) *RootCommand {
	root := &RootCommand{
		backend: backend,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A local, multi-account to-do list",
		Long: `todo keeps personal task lists for several accounts in one local database.

Each account sees only its own tasks. Task commands log in with --username and
--password (or TODO_USERNAME and TODO_PASSWORD) for the duration of the command;
the shell and tui commands keep a session open instead.

EXAMPLES:
  todo register alice                                  # Create an account
  todo -u alice add "Buy milk" --priority Low --due 2024-01-01
  todo -u alice list --sort due                        # List tasks, earliest due first
  todo -u alice complete 3                             # Complete task 3
  todo -u alice delete --description "Buy milk"        # Delete by exact description
  todo shell                                           # Interactive session
  todo tui                                             # Full-screen interface

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file: ~/.todo/config.toml (override with TODO_CONFIG or --config)

  Environment:
    TODO_DB_DIR, TODO_DB_FILENAME, TODO_DB_QUERY_TIMEOUT, TODO_DB_WRITE_TIMEOUT
    TODO_DISPLAY_DATE_FORMAT, TODO_DISPLAY_THEME
    TODO_APP_TIMEOUT, TODO_APP_VERBOSE
    TODO_LIST_DEFAULT_FORMAT, TODO_LIST_DEFAULT_SORT
    TODO_AUTH_BCRYPT_COST, TODO_LOG_LEVEL, TODO_LOG_FILE, TODO_DEBUG`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsSetup(cmd) {
				return nil
			}
			return root.setup()
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// SetIO replaces stdin, stdout and stderr for the command tree.
func (r *RootCommand) SetIO(in io.Reader, out, errOut io.Writer) {
	r.in, r.out, r.errOut = in, out, errOut
	r.cmd.SetIn(in)
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// SetArgs sets the arguments used instead of os.Args[1:].
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// App returns the application built for the last run, or nil.
func (r *RootCommand) App() *App {
	return r.app
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command and releases the backend afterwards.
// The returned error carries a message fit for the user.
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return NewErrorHandler().HandleSimple(r.cmd.ExecuteContext(ctx))
}

func (r *RootCommand) close() {
	logging.Debugln("releasing", len(r.closers), "resources")
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			fmt.Fprintf(r.errOut, "Warning: %v\n", err)
		}
	}
	r.closers = nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Credentials
	flags.StringP("username", "u", "", "Username for task commands (overrides "+UsernameEnv+")")
	flags.StringP("password", "p", "", "Password for task commands (overrides "+PasswordEnv+")")

	flags.String("config", "", "Config file (overrides "+config.ConfigFileEnv+")")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TODO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TODO_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TODO_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TODO_DB_WRITE_TIMEOUT)")
	flags.String("db-dir-permissions", "", "Database directory permissions in octal (overrides TODO_DB_DIR_PERMISSIONS)")

	// Display configuration
	flags.String("date-format", "", "Due date display layout (overrides TODO_DISPLAY_DATE_FORMAT)")
	flags.String("theme", "", "TUI theme, pink or green (overrides TODO_DISPLAY_THEME)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides TODO_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TODO_APP_VERBOSE)")

	// Commands configuration
	flags.String("list-format", "", "Default list format (overrides TODO_LIST_DEFAULT_FORMAT)")
	flags.String("list-sort", "", "Default list order (overrides TODO_LIST_DEFAULT_SORT)")

	// Auth configuration
	flags.Int("bcrypt-cost", 0, "bcrypt cost for new passwords (overrides TODO_AUTH_BCRYPT_COST)")

	// Logging configuration
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides TODO_LOG_LEVEL)")
	flags.String("log-file", "", "Append JSON logs to this file (overrides TODO_LOG_FILE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	registerCmd := &cobra.Command{
		Use:   "register [username] [password]",
		Short: "Create an account",
		Long: `Create an account. Credentials come from the arguments, or from
--username/--password and TODO_USERNAME/TODO_PASSWORD. The password may be empty.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.app.commandContext(cmd.Context())
			defer cancel()

			username, password := r.credentials(args)
			return NewRegisterCommand(r.app).Register(ctx, username, password)
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login [username] [password]",
		Short: "Check credentials",
		Long:  "Verify a username and password. Task commands log in on every run; use shell or tui for a lasting session.",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.app.commandContext(cmd.Context())
			defer cancel()

			username, password := r.credentials(args)
			return NewLoginCommand(r.app).Login(ctx, username, password)
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a task",
		Long: `Add a pending task. Words are joined into the description.

Examples:
  todo -u alice add Buy milk
  todo -u alice add "Pay rent" --priority High --due 2024-02-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.app.commandContext(cmd.Context())
			defer cancel()

			if err := r.login(ctx); err != nil {
				return err
			}
			priority, _ := cmd.Flags().GetString("priority")
			due, _ := cmd.Flags().GetString("due")
			return NewAddCommand(r.app).Add(ctx, strings.Join(args, " "), priority, due)
		},
	}
	addCmd.Flags().String("priority", "", "High, Medium or Low (default Medium)")
	addCmd.Flags().String("due", "", "Due date as YYYY-MM-DD (default today)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.app.commandContext(cmd.Context())
			defer cancel()

			if err := r.login(ctx); err != nil {
				return err
			}
			opts := ListOptions{}
			opts.Status, _ = cmd.Flags().GetString("status")
			opts.Sort, _ = cmd.Flags().GetString("sort")
			opts.Format, _ = cmd.Flags().GetString("format")
			return NewListCommand(r.app).List(ctx, opts)
		},
	}
	listCmd.Flags().String("status", "", "Only pending or completed tasks")
	listCmd.Flags().String("sort", "", "created, due or priority (default from config)")
	listCmd.Flags().String("format", "", "table, csv or json (default from config)")

	completeCmd := &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a task completed",
		Long: `Mark a task completed by id, or every task whose description matches
exactly with --description. Completing a completed task is a no-op.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.app.commandContext(cmd.Context())
			defer cancel()

			target, err := cobraTaskTarget(cmd, args)
			if err != nil {
				return err
			}
			if err := r.login(ctx); err != nil {
				return err
			}
			handler := NewCompleteCommand(r.app)
			if target.byText {
				return handler.ByDescription(ctx, target.description)
			}
			return handler.ByID(ctx, target.id)
		},
	}
	completeCmd.Flags().String("description", "", "Complete every task with exactly this description")

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long: `Delete a task by id, or every task whose description matches exactly
with --description. This cannot be undone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.app.commandContext(cmd.Context())
			defer cancel()

			target, err := cobraTaskTarget(cmd, args)
			if err != nil {
				return err
			}
			if err := r.login(ctx); err != nil {
				return err
			}
			handler := NewDeleteCommand(r.app)
			if target.byText {
				return handler.ByDescription(ctx, target.description)
			}
			return handler.ByID(ctx, target.id)
		},
	}
	deleteCmd.Flags().String("description", "", "Delete every task with exactly this description")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show task counts and the next due task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.app.commandContext(cmd.Context())
			defer cancel()

			if err := r.login(ctx); err != nil {
				return err
			}
			return NewSummaryCommand(r.app).Execute(ctx, args)
		},
	}

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long:  "Read commands from stdin against one session. Type help for the command list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.loginIfGiven(cmd.Context()); err != nil {
				return err
			}
			return NewShell(r.app).Run(cmd.Context())
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.loginIfGiven(cmd.Context()); err != nil {
				return err
			}
			return ui.Run(cmd.Context(), r.app.Session(), ui.Options{
				Theme:      r.app.config.Display.Theme,
				DateFormat: r.app.dateFormat(),
				Input:      r.in,
				Output:     r.out,
			})
		},
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		registerCmd,
		loginCmd,
		addCmd,
		listCmd,
		completeCmd,
		deleteCmd,
		summaryCmd,
		shellCmd,
		tuiCmd,
	)
}

func cobraTaskTarget(cmd *cobra.Command, args []string) (taskTarget, error) {
	if cmd.Flags().Changed("description") {
		if len(args) > 0 {
			return taskTarget{}, errors.NewInvalidInputError("command", cmd.Name(), "give an id or --description, not both")
		}
		description, _ := cmd.Flags().GetString("description")
		return taskTarget{description: description, byText: true}, nil
	}
	return parseTaskTarget(cmd.Name(), args)
}

// setup loads the configuration, configures logging and opens the backend.
func (r *RootCommand) setup() error {
	flags := r.cmd.PersistentFlags()

	loader := config.NewLoader()
	if path, _ := flags.GetString("config"); path != "" {
		loader = config.NewLoaderWithFile(path)
	}
	overrides, err := r.getOverridesFromFlags()
	if err != nil {
		return err
	}
	cfg, err := loader.LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logCloser, err := logging.Setup(logging.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Verbose: cfg.Application.Verbose,
		Writer:  r.errOut,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	r.closers = append(r.closers, logCloser)
	logging.Debugf("database: %s\n", cfg.GetDatabasePath())

	apiInstance, closer, err := r.backend(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if closer != nil {
		r.closers = append(r.closers, closer)
	}

	r.app = NewAppWithConfig(apiInstance, cfg)
	r.app.SetIO(r.in, r.out, r.errOut)
	return nil
}

// getOverridesFromFlags collects the flags that were set on the command line
func (r *RootCommand) getOverridesFromFlags() (*config.ConfigOverrides, error) {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	// Database configuration
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}
	if flags.Changed("db-dir-permissions") {
		s, _ := flags.GetString("db-dir-permissions")
		v, err := strconv.ParseUint(s, 8, 32)
		if err != nil {
			return nil, errors.NewInvalidInputError("db-dir-permissions", s, "must be an octal mode such as 0755")
		}
		perm := uint32(v)
		overrides.DBDirPermissions = &perm
	}

	// Display configuration
	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		overrides.DateFormat = &v
	}
	if flags.Changed("theme") {
		v, _ := flags.GetString("theme")
		overrides.Theme = &v
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	// Commands configuration
	if flags.Changed("list-format") {
		v, _ := flags.GetString("list-format")
		overrides.ListDefaultFormat = &v
	}
	if flags.Changed("list-sort") {
		v, _ := flags.GetString("list-sort")
		overrides.ListDefaultSort = &v
	}

	// Auth configuration
	if flags.Changed("bcrypt-cost") {
		v, _ := flags.GetInt("bcrypt-cost")
		overrides.BcryptCost = &v
	}

	// Logging configuration
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-file") {
		v, _ := flags.GetString("log-file")
		overrides.LogFile = &v
	}

	return overrides, nil
}

// credentials resolves username and password: arguments first, then
// flags, then the environment.
func (r *RootCommand) credentials(args []string) (string, string) {
	flags := r.cmd.PersistentFlags()

	username, _ := flags.GetString("username")
	if !flags.Changed("username") {
		username = os.Getenv(UsernameEnv)
	}
	password, _ := flags.GetString("password")
	if !flags.Changed("password") {
		password = os.Getenv(PasswordEnv)
	}

	if len(args) > 0 {
		username = args[0]
	}
	if len(args) > 1 {
		password = args[1]
	}
	return username, password
}

// login attaches the command-line user to the session.
func (r *RootCommand) login(ctx context.Context) error {
	username, password := r.credentials(nil)
	if strings.TrimSpace(username) == "" {
		return NewErrorHandler().HandleSimple(errors.NewNotLoggedInError("run this command"))
	}
	if _, err := r.app.session.Login(ctx, username, password); err != nil {
		return NewErrorHandler().Handle("log in", err)
	}
	return nil
}

// loginIfGiven logs in when credentials were supplied, else starts logged out.
func (r *RootCommand) loginIfGiven(ctx context.Context) error {
	if username, _ := r.credentials(nil); strings.TrimSpace(username) == "" {
		return nil
	}
	ctx, cancel := r.app.commandContext(ctx)
	defer cancel()
	return r.login(ctx)
}

// skipsSetup reports whether cmd is cobra's own help or completion machinery.
func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" || c.Name() == cobra.ShellCompRequestCmd || c.Name() == cobra.ShellCompNoDescRequestCmd {
			return true
		}
	}
	return false
}
