package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"todo/internal/logging"
)

// Config holds all configuration options for the todo application
type Config struct {
	Database    DatabaseConfig    `toml:"database"`
	Display     DisplayConfig     `toml:"display"`
	Application ApplicationConfig `toml:"application"`
	Commands    CommandsConfig    `toml:"commands"`
	Auth        AuthConfig        `toml:"auth"`
	Logging     LoggingConfig     `toml:"logging"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `toml:"dir" env:"TODO_DB_DIR"`
	Filename       string        `toml:"filename" env:"TODO_DB_FILENAME"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"TODO_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `toml:"write_timeout" env:"TODO_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"TODO_DB_DIR_PERMISSIONS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `toml:"date_format" env:"TODO_DISPLAY_DATE_FORMAT"`
	Theme      string `toml:"theme" env:"TODO_DISPLAY_THEME"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `toml:"timeout" env:"TODO_APP_TIMEOUT"`
	Verbose bool          `toml:"verbose" env:"TODO_APP_VERBOSE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFormat string `toml:"list_default_format" env:"TODO_LIST_DEFAULT_FORMAT"`
	ListDefaultSort   string `toml:"list_default_sort" env:"TODO_LIST_DEFAULT_SORT"`
}

// AuthConfig holds password hashing configuration
type AuthConfig struct {
	BcryptCost int `toml:"bcrypt_cost" env:"TODO_AUTH_BCRYPT_COST"`
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	Level string `toml:"level" env:"TODO_LOG_LEVEL"`
	File  string `toml:"file" env:"TODO_LOG_FILE"`
}

// Themes known to the terminal UI.
const (
	ThemePink  = "pink"
	ThemeGreen = "green"
)

// Bounds accepted by golang.org/x/crypto/bcrypt.
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".todo")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "todo.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			DateFormat: "2006-01-02",
			Theme:      ThemePink,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		Commands: CommandsConfig{
			ListDefaultFormat: "table",
			ListDefaultSort:   "created",
		},
		Auth: AuthConfig{
			BcryptCost: 10,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TODO_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TODO_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TODO_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TODO_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TODO_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Display configuration
	if format := os.Getenv("TODO_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if theme := os.Getenv("TODO_DISPLAY_THEME"); theme != "" {
		c.Display.Theme = strings.ToLower(theme)
	}

	// Application configuration
	if timeout := os.Getenv("TODO_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TODO_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Commands configuration
	if format := os.Getenv("TODO_LIST_DEFAULT_FORMAT"); format != "" {
		c.Commands.ListDefaultFormat = format
	}
	if sort := os.Getenv("TODO_LIST_DEFAULT_SORT"); sort != "" {
		c.Commands.ListDefaultSort = sort
	}

	// Auth configuration
	if cost := os.Getenv("TODO_AUTH_BCRYPT_COST"); cost != "" {
		if n, err := strconv.Atoi(cost); err == nil {
			c.Auth.BcryptCost = n
		}
	}

	// Logging configuration
	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if file := os.Getenv("TODO_LOG_FILE"); file != "" {
		c.Logging.File = file
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.Theme != ThemePink && c.Display.Theme != ThemeGreen {
		return &ConfigError{Field: "display.theme", Message: "theme must be pink or green"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Validate commands configuration
	switch c.Commands.ListDefaultFormat {
	case "table", "csv", "json":
	default:
		return &ConfigError{Field: "commands.list_default_format", Message: "list format must be table, csv or json"}
	}
	switch c.Commands.ListDefaultSort {
	case "created", "due", "priority":
	default:
		return &ConfigError{Field: "commands.list_default_sort", Message: "list sort must be created, due or priority"}
	}

	// Validate auth configuration
	if c.Auth.BcryptCost < minBcryptCost || c.Auth.BcryptCost > maxBcryptCost {
		return &ConfigError{Field: "auth.bcrypt_cost", Message: "bcrypt cost must be between 4 and 31"}
	}

	// Validate logging configuration
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return &ConfigError{Field: "logging.level", Message: "log level must be debug, info, warn or error"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
