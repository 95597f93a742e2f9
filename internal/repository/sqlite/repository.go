package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"todo/internal/errors"
	"todo/internal/passwords"
	"todo/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// Options bounds how long a single statement may run and sets the bcrypt
// cost used when migrations rehash legacy passwords.
type Options struct {
	QueryTimeout     time.Duration
	WriteTimeout     time.Duration
	PasswordHashCost int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		QueryTimeout:     10 * time.Second,
		WriteTimeout:     5 * time.Second,
		PasswordHashCost: passwords.DefaultCost,
	}
}

// Repository defines the interface for database operations. Every task
// method is scoped by the owning user's id.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, userID, id int64) (*Task, error)
	ListTasks(ctx context.Context, query TaskQuery) ([]*Task, error)
	CountTasks(ctx context.Context, userID int64) (int64, error)
	CompleteTask(ctx context.Context, userID, id int64) error
	CompleteTasksByName(ctx context.Context, userID int64, name string) (int64, error)
	DeleteTask(ctx context.Context, userID, id int64) error
	DeleteTasksByName(ctx context.Context, userID int64, name string) (int64, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, DefaultOptions())
}

// NewWithOptions opens dbPath, brings the schema up to date and enables
// foreign key enforcement.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// One connection for the process; this also keeps :memory: databases whole.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db, migrations.Options{PasswordHashCost: opts.PasswordHashCost}); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	repo, err := NewFromDB(db, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewFromDB wraps an already-migrated handle.
func NewFromDB(db *sql.DB, opts Options) (*SQLiteRepository, error) {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}
	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return withTimeout(ctx, r.opts.WriteTimeout)
}

// CreateUser inserts user and sets its ID. A taken username yields a
// duplicate-username error; every other failure stays a database error.
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = timeNow().UTC()
	}

	query := `
	INSERT INTO users (username, password_hash, created_at)
	VALUES (?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, user.Username, user.PasswordHash, FormatTimeForDB(user.CreatedAt))
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.NewDuplicateUsernameError(user.Username, err)
		}
		return err
	}

	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*User, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, username, password_hash, created_at
	FROM users
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanUser, "user", fmt.Sprintf("%d", id), id)
}

// GetUserByUsername retrieves a user by exact, case-sensitive username
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, username, password_hash, created_at
	FROM users
	WHERE username = ?`

	return QuerySingle(ctx, r.db, query, ScanUser, "user", username, username)
}

// CreateTask inserts task and sets its ID. The owner must exist.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if task.CreatedAt.IsZero() {
		task.CreatedAt = timeNow().UTC()
	}
	if task.Status == "" {
		task.Status = StatusPending
	}

	query := `
	INSERT INTO tasks (user_id, task, priority, due_date, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		task.UserID, task.Task, task.Priority, FormatDateForDB(task.DueDate), task.Status, FormatTimeForDB(task.CreatedAt))
	if err != nil {
		if IsForeignKeyViolation(err) {
			return errors.NewNotFoundError("user", fmt.Sprintf("%d", task.UserID))
		}
		return err
	}

	task.ID = id
	return nil
}

// GetTask retrieves a task by ID within its owner's scope
func (r *SQLiteRepository) GetTask(ctx context.Context, userID, id int64) (*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, user_id, task, priority, due_date, status, created_at
	FROM tasks
	WHERE id = ? AND user_id = ?`

	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id, userID)
}

// ListTasks retrieves the tasks of query.UserID in an explicit order
func (r *SQLiteRepository) ListTasks(ctx context.Context, q TaskQuery) ([]*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	conditions := []string{"user_id = ?"}
	args := []interface{}{q.UserID}

	if q.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *q.Status)
	}

	query := `
	SELECT id, user_id, task, priority, due_date, status, created_at
	FROM tasks
	WHERE ` + strings.Join(conditions, " AND ") + `
	ORDER BY ` + orderClause(q.OrderBy)

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", args...)
}

func orderClause(order TaskOrder) string {
	switch order {
	case OrderByDueDate:
		return "due_date ASC, id ASC"
	case OrderByPriority:
		return "CASE priority WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 WHEN 'Low' THEN 2 ELSE 3 END, due_date ASC, id ASC"
	default:
		return "id ASC"
	}
}

// CountTasks returns how many tasks userID owns
func (r *SQLiteRepository) CountTasks(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = ?`, userID).Scan(&count); err != nil {
		return 0, HandleDatabaseError("count tasks", err)
	}
	return count, nil
}

// CompleteTask marks one owned task Completed. Completing twice is fine.
func (r *SQLiteRepository) CompleteTask(ctx context.Context, userID, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `UPDATE tasks SET status = ? WHERE id = ? AND user_id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), StatusCompleted, id, userID)
}

// CompleteTasksByName marks every owned task whose description equals name
func (r *SQLiteRepository) CompleteTasksByName(ctx context.Context, userID int64, name string) (int64, error) {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `UPDATE tasks SET status = ? WHERE task = ? AND user_id = ?`
	return ExecuteCountingRows(ctx, r.db, query, StatusCompleted, name, userID)
}

// DeleteTask deletes one owned task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, userID, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ? AND user_id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), id, userID)
}

// DeleteTasksByName deletes every owned task whose description equals name
func (r *SQLiteRepository) DeleteTasksByName(ctx context.Context, userID int64, name string) (int64, error) {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE task = ? AND user_id = ?`
	return ExecuteCountingRows(ctx, r.db, query, name, userID)
}
