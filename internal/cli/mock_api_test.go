package cli

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"todo/internal/api"
	"todo/internal/config"
	"todo/internal/domain"
	"todo/internal/errors"
	"todo/internal/services"
	"todo/internal/validation"
)

var mockToday = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

// mockAPI implements api.API in memory for testing
type mockAPI struct {
	users      map[string]*domain.User
	passwords  map[int64]string
	tasks      map[int64]*domain.Task
	nextUserID int64
	nextTaskID int64
	validator  *validation.TaskValidator

	// failWith, when set, is returned by every task operation
	failWith error
}

// newMockAPI creates a new mock API instance
func newMockAPI() *mockAPI {
	return &mockAPI{
		users:      make(map[string]*domain.User),
		passwords:  make(map[int64]string),
		tasks:      make(map[int64]*domain.Task),
		nextUserID: 1,
		nextTaskID: 1,
		validator: validation.NewTaskValidatorWithValidator(
			validation.NewValidatorWithClock(func() time.Time { return mockToday })),
	}
}

var _ api.API = (*mockAPI)(nil)

func (m *mockAPI) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.NewValidationError("username cannot be empty", nil)
	}
	if _, exists := m.users[username]; exists {
		return nil, errors.NewDuplicateUsernameError(username, nil)
	}
	user := &domain.User{ID: m.nextUserID, Username: username}
	m.users[username] = user
	m.passwords[user.ID] = password
	m.nextUserID++
	return user, nil
}

func (m *mockAPI) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, exists := m.users[username]
	if !exists || m.passwords[user.ID] != password {
		return nil, errors.NewInvalidCredentialsError()
	}
	return user, nil
}

func (m *mockAPI) AddTask(ctx context.Context, ownerID int64, description, priority, dueDate string) (*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, err := m.ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	due, err := m.ParseDueDate(dueDate)
	if err != nil {
		return nil, err
	}
	if err := m.validator.ValidateTaskForCreation(ownerID, description, p); err != nil {
		return nil, err
	}

	task := domain.NewTask(ownerID, description, p, due)
	task.ID = m.nextTaskID
	m.tasks[task.ID] = &task
	m.nextTaskID++
	return &task, nil
}

func (m *mockAPI) ListTasks(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	order, ok := domain.ParseTaskOrder(string(filter.Order))
	if !ok {
		return nil, errors.NewInvalidInputError("order", filter.Order, "must be created, due or priority")
	}

	result := make([]*domain.Task, 0)
	for _, task := range m.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		t := *task
		result = append(result, &t)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch order {
		case domain.OrderDue:
			if !a.DueDate.Equal(b.DueDate) {
				return a.DueDate.Before(b.DueDate)
			}
		case domain.OrderPriority:
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() < b.Priority.Rank()
			}
			if !a.DueDate.Equal(b.DueDate) {
				return a.DueDate.Before(b.DueDate)
			}
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (m *mockAPI) owned(ownerID, id int64) (*domain.Task, error) {
	task, exists := m.tasks[id]
	if !exists || task.OwnerID != ownerID {
		return nil, errors.NewNotFoundError("task", fmt.Sprintf("%d", id))
	}
	return task, nil
}

func (m *mockAPI) GetTask(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	task, err := m.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	t := *task
	return &t, nil
}

func (m *mockAPI) CompleteTask(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	task, err := m.owned(ownerID, id)
	if err != nil {
		return nil, err
	}
	*task = task.Complete()
	t := *task
	return &t, nil
}

func (m *mockAPI) DeleteTask(ctx context.Context, ownerID, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, err := m.owned(ownerID, id); err != nil {
		return err
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockAPI) CompleteByDescription(ctx context.Context, ownerID int64, description string) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	var n int64
	for _, task := range m.tasks {
		if task.OwnerID == ownerID && task.Description == description {
			*task = task.Complete()
			n++
		}
	}
	return n, nil
}

func (m *mockAPI) DeleteByDescription(ctx context.Context, ownerID int64, description string) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	var n int64
	for id, task := range m.tasks {
		if task.OwnerID == ownerID && task.Description == description {
			delete(m.tasks, id)
			n++
		}
	}
	return n, nil
}

func (m *mockAPI) TaskSummary(ctx context.Context, ownerID int64) (*services.TaskSummary, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	tasks, err := m.ListTasks(ctx, ownerID, domain.TaskFilter{Order: domain.OrderDue})
	if err != nil {
		return nil, err
	}
	return services.NewReportingService(nil, services.Options{}).SummarizeTasks(tasks, mockToday), nil
}

func (m *mockAPI) ParsePriority(s string) (domain.Priority, error) {
	return m.validator.ParsePriority(s)
}

func (m *mockAPI) ParseDueDate(s string) (time.Time, error) {
	return m.validator.ParseDueDate(s)
}

// setupTestAppWithMockAPI creates an App over a fresh mockAPI and captures
// its output.
func setupTestAppWithMockAPI(t *testing.T) (*App, *mockAPI, *outputs) {
	t.Helper()
	mock := newMockAPI()
	app := NewAppWithConfig(mock, config.NewConfig())
	out := &outputs{}
	app.SetIO(strings.NewReader(""), &out.stdout, &out.stderr)

	prev := timeNow
	timeNow = func() time.Time { return mockToday.Add(9 * time.Hour) }
	t.Cleanup(func() { timeNow = prev })

	return app, mock, out
}

// loggedInApp registers and logs in alice.
func loggedInApp(t *testing.T) (*App, *mockAPI, *outputs) {
	t.Helper()
	app, mock, out := setupTestAppWithMockAPI(t)
	ctx := context.Background()
	if _, err := mock.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := app.session.Login(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return app, mock, out
}

// outputs captures what an App writes.
type outputs struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}
