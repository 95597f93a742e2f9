package domain

import (
	"todo/internal/repository/sqlite"
)

// UserMapper handles conversion between domain and database User models.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDatabase converts a domain User to a database User.
func (m *UserMapper) ToDatabase(domainUser User) sqlite.User {
	return sqlite.User{
		ID:           domainUser.ID,
		Username:     domainUser.Username,
		PasswordHash: domainUser.PasswordHash,
		CreatedAt:    domainUser.CreatedAt,
	}
}

// FromDatabase converts a database User to a domain User.
func (m *UserMapper) FromDatabase(dbUser sqlite.User) User {
	return User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		PasswordHash: dbUser.PasswordHash,
		CreatedAt:    dbUser.CreatedAt,
	}
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:        domainTask.ID,
		UserID:    domainTask.OwnerID,
		Task:      domainTask.Description,
		Priority:  string(domainTask.Priority),
		DueDate:   domainTask.DueDate,
		Status:    string(domainTask.Status),
		CreatedAt: domainTask.CreatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:          dbTask.ID,
		OwnerID:     dbTask.UserID,
		Description: dbTask.Task,
		Priority:    Priority(dbTask.Priority),
		DueDate:     dbTask.DueDate,
		Status:      Status(dbTask.Status),
		CreatedAt:   dbTask.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []*Task {
	domainTasks := make([]*Task, len(dbTasks))
	for i, dbTask := range dbTasks {
		task := m.FromDatabase(*dbTask)
		domainTasks[i] = &task
	}
	return domainTasks
}

// TaskFilterMapper converts a domain TaskFilter into a repository query.
type TaskFilterMapper struct{}

// NewTaskFilterMapper creates a new TaskFilterMapper instance.
func NewTaskFilterMapper() *TaskFilterMapper {
	return &TaskFilterMapper{}
}

// ToDatabase scopes filter to ownerID.
func (m *TaskFilterMapper) ToDatabase(ownerID int64, filter TaskFilter) sqlite.TaskQuery {
	query := sqlite.TaskQuery{UserID: ownerID}

	if filter.Status != nil {
		status := string(*filter.Status)
		query.Status = &status
	}

	switch filter.Order {
	case OrderDue:
		query.OrderBy = sqlite.OrderByDueDate
	case OrderPriority:
		query.OrderBy = sqlite.OrderByPriority
	default:
		query.OrderBy = sqlite.OrderByCreated
	}

	return query
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	User       *UserMapper
	Task       *TaskMapper
	TaskFilter *TaskFilterMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		User:       NewUserMapper(),
		Task:       NewTaskMapper(),
		TaskFilter: NewTaskFilterMapper(),
	}
}
