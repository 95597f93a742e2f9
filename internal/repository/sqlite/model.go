package sqlite

import "time"

// User is a row of the users table.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Task is a row of the tasks table. Task holds the description text, the
// column name kept from the legacy schema.
type Task struct {
	ID        int64
	UserID    int64
	Task      string
	Priority  string
	DueDate   time.Time
	Status    string
	CreatedAt time.Time
}

// Task status values as stored.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// TaskOrder selects the ORDER BY clause of ListTasks.
type TaskOrder string

const (
	OrderByCreated  TaskOrder = "created"
	OrderByDueDate  TaskOrder = "due"
	OrderByPriority TaskOrder = "priority"
)

// TaskQuery scopes a task listing. UserID is mandatory.
type TaskQuery struct {
	UserID  int64
	Status  *string
	OrderBy TaskOrder
}
