package migrations

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"todo/internal/passwords"
)

func init() {
	RegisterGoMigration(3, "upgrade_legacy_schema", Up_000003_upgrade_legacy_schema, nil)
}

// Up_000003_upgrade_legacy_schema converts a database created by the old
// desktop application in place. Its users table kept plaintext passwords and
// its tasks carried decorated priority/status strings ("High 🔴",
// "Completed ✔") with no owner constraint. Plaintext passwords are rehashed at
// opts.PasswordHashCost. Fresh databases are left untouched.
func Up_000003_upgrade_legacy_schema(tx *sql.Tx, opts Options) error {
	legacyUsers, err := HasColumn(tx, "users", "password")
	if err != nil {
		return fmt.Errorf("failed to inspect users table: %w", err)
	}
	if legacyUsers {
		if err := upgradeLegacyUsers(tx, opts.PasswordHashCost); err != nil {
			return err
		}
	}

	legacyTasks, err := isLegacyTasksTable(tx)
	if err != nil {
		return fmt.Errorf("failed to inspect tasks table: %w", err)
	}
	if legacyTasks {
		if err := upgradeLegacyTasks(tx); err != nil {
			return err
		}
	}
	return nil
}

func isLegacyTasksTable(tx *sql.Tx) (bool, error) {
	hasCreatedAt, err := HasColumn(tx, "tasks", "created_at")
	if err != nil {
		return false, err
	}
	return !hasCreatedAt, nil
}

func upgradeLegacyUsers(tx *sql.Tx, cost int) error {
	type legacyUser struct {
		id       int64
		username sql.NullString
		password sql.NullString
	}

	rows, err := tx.Query("SELECT id, username, password FROM users ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to read legacy users: %w", err)
	}
	var users []legacyUser
	for rows.Next() {
		var u legacyUser
		if err := rows.Scan(&u.id, &u.username, &u.password); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan legacy user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating legacy users: %w", err)
	}
	rows.Close()

	if _, err := tx.Exec(`
		CREATE TABLE users_upgraded (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`); err != nil {
		return fmt.Errorf("failed to create upgraded users table: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO users_upgraded (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare user insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, u := range users {
		if !u.username.Valid || u.username.String == "" {
			continue
		}
		hash, err := passwords.Hash(u.password.String, cost)
		if err != nil {
			return fmt.Errorf("failed to hash password for user %d: %w", u.id, err)
		}
		if _, err := stmt.Exec(u.id, u.username.String, string(hash), now); err != nil {
			return fmt.Errorf("failed to copy user %d: %w", u.id, err)
		}
	}

	return execStatements(
		`DROP TABLE users`,
		`ALTER TABLE users_upgraded RENAME TO users`,
	)(tx, Options{})
}

func upgradeLegacyTasks(tx *sql.Tx) error {
	type legacyTask struct {
		id       int64
		userID   sql.NullInt64
		task     sql.NullString
		priority sql.NullString
		dueDate  sql.NullString
		status   sql.NullString
	}

	// Tasks whose owner no longer exists could never be listed; they are dropped.
	rows, err := tx.Query(`
		SELECT id, user_id, task, priority, due_date, status
		FROM tasks
		WHERE user_id IN (SELECT id FROM users)
		ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to read legacy tasks: %w", err)
	}
	var tasks []legacyTask
	for rows.Next() {
		var lt legacyTask
		if err := rows.Scan(&lt.id, &lt.userID, &lt.task, &lt.priority, &lt.dueDate, &lt.status); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan legacy task: %w", err)
		}
		tasks = append(tasks, lt)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating legacy tasks: %w", err)
	}
	rows.Close()

	if _, err := tx.Exec(`
		CREATE TABLE tasks_upgraded (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			task TEXT NOT NULL,
			priority TEXT NOT NULL,
			due_date TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Pending',
			created_at TEXT NOT NULL
		)`); err != nil {
		return fmt.Errorf("failed to create upgraded tasks table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tasks_upgraded (id, user_id, task, priority, due_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare task insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, lt := range tasks {
		if strings.TrimSpace(lt.task.String) == "" {
			continue
		}
		_, err := stmt.Exec(
			lt.id,
			lt.userID.Int64,
			lt.task.String,
			normalizeLegacyPriority(lt.priority.String),
			normalizeLegacyDueDate(lt.dueDate.String, now),
			normalizeLegacyStatus(lt.status.String),
			now.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to copy task %d: %w", lt.id, err)
		}
	}

	return execStatements(
		`DROP INDEX IF EXISTS idx_tasks_user_id`,
		`DROP TABLE tasks`,
		`ALTER TABLE tasks_upgraded RENAME TO tasks`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
	)(tx, Options{})
}

// normalizeLegacyPriority strips the emoji suffix the old combo box stored.
// Unknown values fall back to Medium.
func normalizeLegacyPriority(s string) string {
	fields := strings.Fields(s)
	if len(fields) > 0 {
		for _, p := range []string{"High", "Medium", "Low"} {
			if strings.EqualFold(fields[0], p) {
				return p
			}
		}
	}
	return "Medium"
}

// normalizeLegacyStatus maps "Completed ✔" and friends to Completed and
// everything else to Pending.
func normalizeLegacyStatus(s string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(s)), "completed") {
		return "Completed"
	}
	return "Pending"
}

func normalizeLegacyDueDate(s string, now time.Time) string {
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err == nil {
		return t.Format("2006-01-02")
	}
	return now.Format("2006-01-02")
}
