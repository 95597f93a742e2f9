package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/config"
)

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value string
		want  Environment
	}{
		{"development", Development},
		{"testing", Testing},
		{"production", Production},
		{"", Production},
		{"staging", Production},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvironmentVar, tt.value)
			assert.Equal(t, tt.want, getEnvironment())
		})
	}
}

func TestBackendFactory_Open(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Auth.BcryptCost = 4
	cfg.Database.Dir = filepath.Join(t.TempDir(), "data")

	for _, env := range []Environment{Testing, Production} {
		t.Run(string(env), func(t *testing.T) {
			a, closer, err := NewBackendFactory(env).Open(cfg)
			require.NoError(t, err)
			defer closer.Close()

			ctx := context.Background()
			user, err := a.Register(ctx, "alice", "pw1")
			require.NoError(t, err)

			task, err := a.AddTask(ctx, user.ID, "Buy milk", "low", "2024-01-01")
			require.NoError(t, err)
			assert.Equal(t, "Buy milk | Low | 2024-01-01 | Pending", task.String())
		})
	}

	assert.FileExists(t, filepath.Join(cfg.Database.Dir, "todo.db"))
}
