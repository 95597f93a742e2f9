package migrations

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Options carries settings for migrations that rewrite data.
type Options struct {
	// PasswordHashCost is the bcrypt cost for passwords rehashed from a
	// legacy database. Zero means passwords.DefaultCost.
	PasswordHashCost int
}

// Step runs one direction of a migration inside its transaction.
type Step func(tx *sql.Tx, opts Options) error

// Migration is one schema step. Up and Down run inside a single transaction.
type Migration struct {
	Version int
	Name    string
	Up      Step
	Down    Step
}

var registry = map[int]Migration{}

// RegisterGoMigration adds a migration to the package registry. Versions must be unique.
func RegisterGoMigration(version int, name string, up, down Step) {
	if _, exists := registry[version]; exists {
		panic(fmt.Sprintf("migration %d registered twice", version))
	}
	registry[version] = Migration{Version: version, Name: name, Up: up, Down: down}
}

// execStatements returns a migration step that runs each statement in order.
func execStatements(statements ...string) Step {
	return func(tx *sql.Tx, _ Options) error {
		for _, stmt := range statements {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	}
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB, opts Options) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	dirty, err := getDirtyMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to check migration state: %w", err)
	}
	if len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state, failed migration(s): %v", dirty)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range loadMigrations() {
		if applied[migration.Version] {
			continue
		}
		if err := applyMigration(db, migration, opts); err != nil {
			if markErr := markDirty(db, migration.Version); markErr != nil {
				return fmt.Errorf("failed to apply migration %d: %w (and failed to mark it dirty: %v)", migration.Version, err, markErr)
			}
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}
	}

	if version, err := CurrentVersion(db); err == nil {
		slog.Debug("schema up to date", "version", version)
	}
	return nil
}

// RollbackTo reverts applied migrations, newest first, until only versions
// up to and including target remain.
func RollbackTo(db *sql.DB, target int) error {
	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrations := loadMigrations()
	for i := len(migrations) - 1; i >= 0; i-- {
		migration := migrations[i]
		if migration.Version <= target || !applied[migration.Version] {
			continue
		}
		if err := revertMigration(db, migration); err != nil {
			return fmt.Errorf("failed to revert migration %d: %w", migration.Version, err)
		}
	}
	return nil
}

// CurrentVersion returns the highest applied migration version, or 0.
func CurrentVersion(db *sql.DB) (int, error) {
	var version sql.NullInt64
	err := db.QueryRow("SELECT MAX(version) FROM migrations WHERE dirty = FALSE").Scan(&version)
	if err != nil {
		return 0, err
	}
	return int(version.Int64), nil
}

func createMigrationsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		dirty BOOLEAN DEFAULT FALSE
	)`
	if _, err := db.Exec(query); err != nil {
		return err
	}

	// Tables created before the dirty flag existed lack the column.
	hasDirty, err := HasColumn(db, "migrations", "dirty")
	if err != nil {
		return err
	}
	if !hasDirty {
		_, err = db.Exec("ALTER TABLE migrations ADD COLUMN dirty BOOLEAN DEFAULT FALSE")
	}
	return err
}

func loadMigrations() []Migration {
	migrations := make([]Migration, 0, len(registry))
	for _, migration := range registry {
		migrations = append(migrations, migration)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations
}

func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations WHERE dirty = FALSE")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func getDirtyMigrations(db *sql.DB) ([]int, error) {
	rows, err := db.Query("SELECT version FROM migrations WHERE dirty = TRUE ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dirty []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		dirty = append(dirty, version)
	}
	return dirty, rows.Err()
}

func markDirty(db *sql.DB, version int) error {
	_, err := db.Exec("INSERT OR REPLACE INTO migrations (version, dirty) VALUES (?, TRUE)", version)
	return err
}

func applyMigration(db *sql.DB, migration Migration, opts Options) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if err := migration.Up(tx, opts); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec("INSERT INTO migrations (version) VALUES (?)", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func revertMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if migration.Down != nil {
		if err := migration.Down(tx, Options{}); err != nil {
			tx.Rollback()
			return err
		}
	}

	if _, err := tx.Exec("DELETE FROM migrations WHERE version = ?", migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// HasColumn reports whether table has a column with the given name.
func HasColumn(q queryer, table, column string) (bool, error) {
	rows, err := q.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if strings.EqualFold(name, column) {
			return true, nil
		}
	}
	return false, rows.Err()
}
