package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"todo/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	// Nested directory that does not exist yet
	tmpDir := filepath.Join(t.TempDir(), "nested", "todo")
	t.Setenv("TODO_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))
	t.Setenv("TODO_DB_DIR", tmpDir)

	loader := NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	repo, err := CreateRepository(cfg)
	if err != nil {
		t.Fatalf("CreateRepository() error = %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "todo.db")); err != nil {
		t.Errorf("database file was not created: %v", err)
	}

	ctx := context.Background()
	user := &sqlite.User{Username: "alice", PasswordHash: "hash"}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	task := &sqlite.Task{UserID: user.ID, Task: "Test Task", Priority: "High", DueDate: time.Now()}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	tasks, err := repo.ListTasks(ctx, sqlite.TaskQuery{UserID: user.ID})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("ListTasks() returned %d tasks, want 1", len(tasks))
	}
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	if err != nil {
		t.Fatalf("CreateTestRepository() error = %v", err)
	}
	defer repo.Close()

	count, err := repo.CountTasks(context.Background(), 1)
	if err != nil {
		t.Fatalf("CountTasks() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountTasks() = %d, want 0", count)
	}
}

func TestRepositoryOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.QueryTimeout = 3 * time.Second
	cfg.Database.WriteTimeout = 2 * time.Second
	cfg.Auth.BcryptCost = 6

	opts := cfg.RepositoryOptions()
	if opts.QueryTimeout != 3*time.Second || opts.WriteTimeout != 2*time.Second {
		t.Errorf("RepositoryOptions() = %+v", opts)
	}
	if opts.PasswordHashCost != 6 {
		t.Errorf("RepositoryOptions().PasswordHashCost = %d, want 6", opts.PasswordHashCost)
	}
}
