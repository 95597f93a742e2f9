package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ConfigFileEnv names the environment variable pointing at an explicit config file.
const ConfigFileEnv = "TODO_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader reading the default config file
func NewLoader() *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: DefaultConfigFile(),
	}
}

// NewLoaderWithFile creates a loader reading path instead of the default file.
func NewLoaderWithFile(path string) *Loader {
	l := NewLoader()
	l.filePath = path
	return l
}

// DefaultConfigFile returns $TODO_CONFIG, or ~/.todo/config.toml.
func DefaultConfigFile() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".todo", "config.toml")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile decodes the config file over the defaults. A missing file is not an error.
func (l *Loader) loadFile() error {
	if l.filePath == "" {
		return nil
	}

	md, err := toml.DecodeFile(l.filePath, l.config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", l.filePath, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return &ConfigError{Field: "file", Message: fmt.Sprintf("unknown keys in %s: %s", l.filePath, strings.Join(keys, ", "))}
	}

	l.config.Database.Dir = expandHome(l.config.Database.Dir)
	l.config.Logging.File = expandHome(l.config.Logging.File)
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	// Load base configuration
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Apply command line overrides
	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir            *string
	DBFilename       *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	// Display overrides
	DateFormat *string
	Theme      *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool

	// Commands overrides
	ListDefaultFormat *string
	ListDefaultSort   *string

	// Auth overrides
	BcryptCost *int

	// Logging overrides
	LogLevel *string
	LogFile  *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.DBDirPermissions != nil {
		config.Database.DirPermissions = *overrides.DBDirPermissions
	}

	// Display overrides
	if overrides.DateFormat != nil {
		config.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.Theme != nil {
		config.Display.Theme = strings.ToLower(*overrides.Theme)
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}

	// Commands overrides
	if overrides.ListDefaultFormat != nil {
		config.Commands.ListDefaultFormat = *overrides.ListDefaultFormat
	}
	if overrides.ListDefaultSort != nil {
		config.Commands.ListDefaultSort = *overrides.ListDefaultSort
	}

	// Auth overrides
	if overrides.BcryptCost != nil {
		config.Auth.BcryptCost = *overrides.BcryptCost
	}

	// Logging overrides
	if overrides.LogLevel != nil {
		config.Logging.Level = strings.ToLower(*overrides.LogLevel)
	}
	if overrides.LogFile != nil {
		config.Logging.File = *overrides.LogFile
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
