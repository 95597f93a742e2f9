package main

import (
	"fmt"
	"io"
	"os"

	"todo/internal/api"
	"todo/internal/config"
	"todo/internal/repository/sqlite"
	"todo/internal/services"
)

// EnvironmentVar selects which database the binary opens.
const EnvironmentVar = "TODO_ENV"

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// BackendFactory opens the store for an environment and wraps it in the API.
type BackendFactory struct {
	env Environment
}

// NewBackendFactory creates a new backend factory for the given environment
func NewBackendFactory(env Environment) *BackendFactory {
	return &BackendFactory{env: env}
}

// Open satisfies cli.Backend.
func (bf *BackendFactory) Open(cfg *config.Config) (api.API, io.Closer, error) {
	repo, err := bf.createRepository(cfg)
	if err != nil {
		return nil, nil, err
	}
	return api.New(repo, services.Options{BcryptCost: cfg.Auth.BcryptCost}), repo, nil
}

func (bf *BackendFactory) createRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch bf.env {
	case Development:
		// A database next to the working directory.
		repo, err := sqlite.NewWithOptions("todo.db", cfg.RepositoryOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	case Testing:
		return config.CreateTestRepository()
	default:
		return config.CreateRepository(cfg)
	}
}

// getEnvironment reads TODO_ENV, defaulting to production.
func getEnvironment() Environment {
	switch Environment(os.Getenv(EnvironmentVar)) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}
