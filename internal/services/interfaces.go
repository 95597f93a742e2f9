package services

import (
	"context"
	"time"

	"todo/internal/domain"
	"todo/internal/passwords"
	"todo/internal/repository/sqlite"
)

// TaskSummary is a per-owner overview of the task list
type TaskSummary struct {
	Total     int          `json:"total"`
	Pending   int          `json:"pending"`
	Completed int          `json:"completed"`
	Overdue   int          `json:"overdue"`
	NextDue   *domain.Task `json:"next_due,omitempty"` // earliest pending task
}

// AuthService registers users and verifies their credentials
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// TaskService handles the task lifecycle. Every operation is scoped to ownerID.
type TaskService interface {
	// Task CRUD operations
	AddTask(ctx context.Context, ownerID int64, description string, priority domain.Priority, dueDate time.Time) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]*domain.Task, error)
	GetTask(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	CompleteTask(ctx context.Context, ownerID, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, id int64) error

	// Description-keyed operations; they act on every exact match
	CompleteTasksByDescription(ctx context.Context, ownerID int64, description string) (int64, error)
	DeleteTasksByDescription(ctx context.Context, ownerID int64, description string) (int64, error)
}

// ReportingService summarizes task lists
type ReportingService interface {
	GetTaskSummary(ctx context.Context, ownerID int64) (*TaskSummary, error)
	SummarizeTasks(tasks []*domain.Task, now time.Time) *TaskSummary
}

// Options tunes the services.
type Options struct {
	// BcryptCost is the work factor for new password hashes.
	BcryptCost int
	// Now is the clock used for "today". Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns bcrypt's default cost and the wall clock.
func DefaultOptions() Options {
	return Options{BcryptCost: passwords.DefaultCost, Now: time.Now}
}

func (o Options) withDefaults() Options {
	if o.BcryptCost == 0 {
		o.BcryptCost = passwords.DefaultCost
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	AuthService      AuthService
	TaskService      TaskService
	ReportingService ReportingService
}

// NewServiceContainer wires every service over one repository.
func NewServiceContainer(repo sqlite.Repository, opts Options) *ServiceContainer {
	opts = opts.withDefaults()
	taskService := NewTaskService(repo, opts)
	return &ServiceContainer{
		AuthService:      NewAuthService(repo, opts),
		TaskService:      taskService,
		ReportingService: NewReportingService(taskService, opts),
	}
}
