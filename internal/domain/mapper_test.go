package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"todo/internal/repository/sqlite"
)

func TestUserMapper_RoundTrip(t *testing.T) {
	mapper := NewUserMapper()
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	domainUser := User{ID: 3, Username: "alice", PasswordHash: "$2a$hash", CreatedAt: created}

	dbUser := mapper.ToDatabase(domainUser)
	assert.Equal(t, sqlite.User{ID: 3, Username: "alice", PasswordHash: "$2a$hash", CreatedAt: created}, dbUser)
	assert.Equal(t, domainUser, mapper.FromDatabase(dbUser))
}

func TestTaskMapper_ToDatabase(t *testing.T) {
	mapper := NewTaskMapper()
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	domainTask := Task{
		ID:          1,
		OwnerID:     2,
		Description: "Buy milk",
		Priority:    PriorityLow,
		DueDate:     due,
		Status:      StatusPending,
	}

	result := mapper.ToDatabase(domainTask)

	expected := sqlite.Task{
		ID:       1,
		UserID:   2,
		Task:     "Buy milk",
		Priority: "Low",
		DueDate:  due,
		Status:   "Pending",
	}
	assert.Equal(t, expected, result)
}

func TestTaskMapper_FromDatabase(t *testing.T) {
	mapper := NewTaskMapper()
	dbTask := sqlite.Task{ID: 1, UserID: 2, Task: "Pay rent", Priority: "High", Status: "Completed"}

	result := mapper.FromDatabase(dbTask)

	assert.Equal(t, int64(2), result.OwnerID)
	assert.Equal(t, "Pay rent", result.Description)
	assert.Equal(t, PriorityHigh, result.Priority)
	assert.True(t, result.IsCompleted())
}

func TestTaskMapper_FromDatabaseSlice(t *testing.T) {
	mapper := NewTaskMapper()
	dbTasks := []*sqlite.Task{
		{ID: 1, Task: "Task 1"},
		{ID: 2, Task: "Task 2"},
	}

	result := mapper.FromDatabaseSlice(dbTasks)

	assert.Len(t, result, 2)
	assert.Equal(t, "Task 1", result[0].Description)
	assert.Equal(t, "Task 2", result[1].Description)

	empty := mapper.FromDatabaseSlice([]*sqlite.Task{})
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestTaskFilterMapper_ToDatabase(t *testing.T) {
	mapper := NewTaskFilterMapper()
	completed := StatusCompleted

	tests := []struct {
		name     string
		filter   TaskFilter
		expected sqlite.TaskQuery
	}{
		{
			name:     "zero filter lists in creation order",
			filter:   TaskFilter{},
			expected: sqlite.TaskQuery{UserID: 7, OrderBy: sqlite.OrderByCreated},
		},
		{
			name:     "due order",
			filter:   TaskFilter{Order: OrderDue},
			expected: sqlite.TaskQuery{UserID: 7, OrderBy: sqlite.OrderByDueDate},
		},
		{
			name:     "priority order",
			filter:   TaskFilter{Order: OrderPriority},
			expected: sqlite.TaskQuery{UserID: 7, OrderBy: sqlite.OrderByPriority},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapper.ToDatabase(7, tt.filter))
		})
	}

	query := mapper.ToDatabase(7, TaskFilter{Status: &completed})
	if assert.NotNil(t, query.Status) {
		assert.Equal(t, "Completed", *query.Status)
	}
}

func TestNewMapper(t *testing.T) {
	mapper := NewMapper()

	assert.NotNil(t, mapper.User)
	assert.NotNil(t, mapper.Task)
	assert.NotNil(t, mapper.TaskFilter)
}
