package sqlite

import "fmt"

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanUser scans id, username, password_hash, created_at.
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	var createdAt string

	if err := scanner.Scan(&user.ID, &user.Username, &user.PasswordHash, &createdAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, fmt.Errorf("user %d: bad created_at %q: %w", user.ID, createdAt, err)
	}
	user.CreatedAt = t

	return user, nil
}

// ScanTask scans id, user_id, task, priority, due_date, status, created_at.
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var dueDate, createdAt string

	err := scanner.Scan(
		&task.ID,
		&task.UserID,
		&task.Task,
		&task.Priority,
		&dueDate,
		&task.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if task.DueDate, err = ParseDateFromDB(dueDate); err != nil {
		return nil, fmt.Errorf("task %d: bad due_date %q: %w", task.ID, dueDate, err)
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("task %d: bad created_at %q: %w", task.ID, createdAt, err)
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	tasks := []*Task{}
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
