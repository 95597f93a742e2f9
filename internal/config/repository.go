package config

import (
	"fmt"
	"os"

	"todo/internal/repository/sqlite"
)

// RepositoryOptions derives the store's statement timeouts and legacy
// rehash cost from the configuration.
func (c *Config) RepositoryOptions() sqlite.Options {
	return sqlite.Options{
		QueryTimeout:     c.GetQueryTimeout(),
		WriteTimeout:     c.GetWriteTimeout(),
		PasswordHashCost: c.Auth.BcryptCost,
	}
}

// CreateRepository opens the configured database, creating its directory first.
func CreateRepository(config *Config) (*sqlite.SQLiteRepository, error) {
	dbPath := config.GetDatabasePath()

	if dbPath != ":memory:" {
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	repo, err := sqlite.NewWithOptions(dbPath, config.RepositoryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (*sqlite.SQLiteRepository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
