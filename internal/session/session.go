// Package session holds the authenticated identity of one interactive user
// and scopes every task operation to it.
package session

import (
	"context"
	"log/slog"
	"sync"

	"todo/internal/api"
	"todo/internal/domain"
	"todo/internal/errors"
	"todo/internal/services"
)

// State is where a session is in its login lifecycle.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// Session is either LoggedOut or LoggedIn(user). Task operations on a
// LoggedOut session fail with a not-logged-in error.
type Session struct {
	api api.API

	mu   sync.RWMutex
	user *domain.User
}

// New creates a logged-out session over a.
func New(a api.API) *Session {
	return &Session{api: a}
}

// State reports the current login state.
func (s *Session) State() State {
	if s.IsLoggedIn() {
		return LoggedIn
	}
	return LoggedOut
}

// IsLoggedIn reports whether a user is attached to the session.
func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns a copy of the logged-in user.
func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Register creates an account. It does not log the new user in.
func (s *Session) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.api.Register(ctx, username, password)
}

// Login authenticates and, on success, replaces the session's user. A
// failed attempt leaves the session as it was.
func (s *Session) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.api.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	slog.Debug("session logged in", "user_id", user.ID)
	return user, nil
}

// Logout detaches the user. It never touches the store.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		slog.Debug("session logged out", "user_id", s.user.ID)
	}
	s.user = nil
}

func (s *Session) ownerID(operation string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0, errors.NewNotLoggedInError(operation)
	}
	return s.user.ID, nil
}

// AddTask adds a task for the logged-in user. priority and dueDate are
// parsed by the API; empty values mean Medium and today.
func (s *Session) AddTask(ctx context.Context, description, priority, dueDate string) (*domain.Task, error) {
	ownerID, err := s.ownerID("add task")
	if err != nil {
		return nil, err
	}
	return s.api.AddTask(ctx, ownerID, description, priority, dueDate)
}

// ListTasks lists the logged-in user's tasks.
func (s *Session) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	ownerID, err := s.ownerID("list tasks")
	if err != nil {
		return nil, err
	}
	return s.api.ListTasks(ctx, ownerID, filter)
}

// CompleteTask completes one of the logged-in user's tasks by id.
func (s *Session) CompleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	ownerID, err := s.ownerID("complete task")
	if err != nil {
		return nil, err
	}
	return s.api.CompleteTask(ctx, ownerID, id)
}

// DeleteTask deletes one of the logged-in user's tasks by id.
func (s *Session) DeleteTask(ctx context.Context, id int64) error {
	ownerID, err := s.ownerID("delete task")
	if err != nil {
		return err
	}
	return s.api.DeleteTask(ctx, ownerID, id)
}

// CompleteByDescription completes every owned task whose description
// equals description and returns how many matched.
func (s *Session) CompleteByDescription(ctx context.Context, description string) (int64, error) {
	ownerID, err := s.ownerID("complete task")
	if err != nil {
		return 0, err
	}
	return s.api.CompleteByDescription(ctx, ownerID, description)
}

// DeleteByDescription deletes every owned task whose description equals
// description and returns how many matched.
func (s *Session) DeleteByDescription(ctx context.Context, description string) (int64, error) {
	ownerID, err := s.ownerID("delete task")
	if err != nil {
		return 0, err
	}
	return s.api.DeleteByDescription(ctx, ownerID, description)
}

// Summary returns an overview of the logged-in user's tasks.
func (s *Session) Summary(ctx context.Context) (*services.TaskSummary, error) {
	ownerID, err := s.ownerID("summarize tasks")
	if err != nil {
		return nil, err
	}
	return s.api.TaskSummary(ctx, ownerID)
}
