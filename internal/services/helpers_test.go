package services

import (
	"context"
	"testing"
	"time"

	"todo/internal/domain"
	"todo/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return fixedNow },
	}
}

func setupRepo(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupServices(t *testing.T) *ServiceContainer {
	t.Helper()
	return NewServiceContainer(setupRepo(t), testOptions())
}

func registerUser(t *testing.T, svc *ServiceContainer, username string) *domain.User {
	t.Helper()
	user, err := svc.AuthService.Register(context.Background(), username, "pw-"+username)
	require.NoError(t, err)
	return user
}

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func descriptions(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Description
	}
	return out
}
