package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"todo/internal/domain"
	"todo/internal/errors"
	"todo/internal/repository/sqlite"
	"todo/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	now           func() time.Time
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, opts Options) TaskService {
	opts = opts.withDefaults()
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidatorWithValidator(validation.NewValidatorWithClock(opts.Now)),
		now:           opts.Now,
	}
}

// AddTask creates a pending task for ownerID. A zero due date means today.
// The description is stored as entered.
func (t *taskServiceImpl) AddTask(ctx context.Context, ownerID int64, description string, priority domain.Priority, dueDate time.Time) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskForCreation(ownerID, description, priority); err != nil {
		return nil, err
	}

	if dueDate.IsZero() {
		dueDate = t.now()
	}

	task := domain.NewTask(ownerID, description, priority, dueDate)
	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	slog.Debug("task added", "owner_id", ownerID, "task_id", dbTask.ID)
	created := t.mapper.Task.FromDatabase(dbTask)
	return &created, nil
}

// ListTasks returns ownerID's tasks in the filter's order
func (t *taskServiceImpl) ListTasks(ctx context.Context, ownerID int64, filter domain.TaskFilter) ([]*domain.Task, error) {
	order, ok := domain.ParseTaskOrder(string(filter.Order))
	if !ok {
		return nil, errors.NewInvalidInputError("order", string(filter.Order), "must be created, due or priority")
	}
	filter.Order = order
	if filter.Status != nil {
		status, ok := domain.ParseStatus(string(*filter.Status))
		if !ok {
			return nil, errors.NewInvalidInputError("status", string(*filter.Status), "must be Pending or Completed")
		}
		filter.Status = &status
	}

	dbTasks, err := t.repo.ListTasks(ctx, t.mapper.TaskFilter.ToDatabase(ownerID, filter))
	if err != nil {
		return nil, err
	}

	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}

// GetTask retrieves one of ownerID's tasks by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}

	dbTask, err := t.repo.GetTask(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// CompleteTask marks one of ownerID's tasks Completed and returns it.
// Completing an already completed task succeeds.
func (t *taskServiceImpl) CompleteTask(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, err
	}

	if err := t.repo.CompleteTask(ctx, ownerID, id); err != nil {
		return nil, err
	}

	slog.Debug("task completed", "owner_id", ownerID, "task_id", id)
	return t.GetTask(ctx, ownerID, id)
}

// DeleteTask removes one of ownerID's tasks
func (t *taskServiceImpl) DeleteTask(ctx context.Context, ownerID, id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return err
	}

	if err := t.repo.DeleteTask(ctx, ownerID, id); err != nil {
		return err
	}

	slog.Debug("task deleted", "owner_id", ownerID, "task_id", id)
	return nil
}

// CompleteTasksByDescription completes every task of ownerID whose
// description equals description exactly. It returns how many rows
// changed; zero is not an error.
func (t *taskServiceImpl) CompleteTasksByDescription(ctx context.Context, ownerID int64, description string) (int64, error) {
	n, err := t.repo.CompleteTasksByName(ctx, ownerID, description)
	if err != nil {
		return 0, err
	}
	t.logAmbiguous("complete", ownerID, description, n)
	return n, nil
}

// DeleteTasksByDescription deletes every task of ownerID whose description
// equals description exactly, returning how many were removed.
func (t *taskServiceImpl) DeleteTasksByDescription(ctx context.Context, ownerID int64, description string) (int64, error) {
	n, err := t.repo.DeleteTasksByName(ctx, ownerID, description)
	if err != nil {
		return 0, err
	}
	t.logAmbiguous("delete", ownerID, description, n)
	return n, nil
}

func (t *taskServiceImpl) logAmbiguous(op string, ownerID int64, description string, n int64) {
	if n > 1 {
		slog.Info(fmt.Sprintf("%s by description matched several tasks", op),
			"owner_id", ownerID, "description", description, "count", n)
	}
}
