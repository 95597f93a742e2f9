package api

import (
	"context"
	"time"

	"todo/internal/domain"
	"todo/internal/repository/sqlite"
	"todo/internal/services"
	"todo/internal/validation"
)

// API is the surface the presentation layer calls into. Task operations
// take the owner's user ID explicitly; session handling lives above it.
type API interface {
	// Credential operations
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// Task operations
	AddTask(ctx context.Context, ownerID int64, description, priority, dueDate string) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]*domain.Task, error)
	GetTask(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	CompleteTask(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, id int64) error
	CompleteByDescription(ctx context.Context, ownerID int64, description string) (int64, error)
	DeleteByDescription(ctx context.Context, ownerID int64, description string) (int64, error)
	TaskSummary(ctx context.Context, ownerID int64) (*services.TaskSummary, error)

	// Input parsing
	ParsePriority(s string) (domain.Priority, error)
	ParseDueDate(s string) (time.Time, error)
}

type apiImpl struct {
	services      *services.ServiceContainer
	taskValidator *validation.TaskValidator
}

// New creates a new API instance over repo.
func New(repo sqlite.Repository, opts services.Options) API {
	return NewWithServices(services.NewServiceContainer(repo, opts), opts)
}

// NewWithServices creates an API over an existing service container.
func NewWithServices(container *services.ServiceContainer, opts services.Options) API {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &apiImpl{
		services:      container,
		taskValidator: validation.NewTaskValidatorWithValidator(validation.NewValidatorWithClock(now)),
	}
}

func (a *apiImpl) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return a.services.AuthService.Register(ctx, username, password)
}

func (a *apiImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return a.services.AuthService.Authenticate(ctx, username, password)
}

// AddTask parses priority and dueDate the way ParsePriority and
// ParseDueDate do, then creates the task.
func (a *apiImpl) AddTask(ctx context.Context, ownerID int64, description, priority, dueDate string) (*domain.Task, error) {
	p, err := a.ParsePriority(priority)
	if err != nil {
		return nil, err
	}
	due, err := a.ParseDueDate(dueDate)
	if err != nil {
		return nil, err
	}
	return a.services.TaskService.AddTask(ctx, ownerID, description, p, due)
}

func (a *apiImpl) ListTasks(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]*domain.Task, error) {
	return a.services.TaskService.ListTasks(ctx, ownerID, filter)
}

func (a *apiImpl) GetTask(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	return a.services.TaskService.GetTask(ctx, ownerID, id)
}

func (a *apiImpl) CompleteTask(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	return a.services.TaskService.CompleteTask(ctx, ownerID, id)
}

func (a *apiImpl) DeleteTask(ctx context.Context, ownerID, id int64) error {
	return a.services.TaskService.DeleteTask(ctx, ownerID, id)
}

func (a *apiImpl) CompleteByDescription(ctx context.Context, ownerID int64, description string) (int64, error) {
	return a.services.TaskService.CompleteTasksByDescription(ctx, ownerID, description)
}

func (a *apiImpl) DeleteByDescription(ctx context.Context, ownerID int64, description string) (int64, error) {
	return a.services.TaskService.DeleteTasksByDescription(ctx, ownerID, description)
}

func (a *apiImpl) TaskSummary(ctx context.Context, ownerID int64) (*services.TaskSummary, error) {
	return a.services.ReportingService.GetTaskSummary(ctx, ownerID)
}

// ParsePriority accepts High, Medium or Low in any case; empty means Medium.
func (a *apiImpl) ParsePriority(s string) (domain.Priority, error) {
	return a.taskValidator.ParsePriority(s)
}

// ParseDueDate accepts YYYY-MM-DD; empty means today.
func (a *apiImpl) ParseDueDate(s string) (time.Time, error) {
	return a.taskValidator.ParseDueDate(s)
}
