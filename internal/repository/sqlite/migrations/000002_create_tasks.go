package migrations

func init() {
	RegisterGoMigration(2, "create_tasks",
		execStatements(`
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			task TEXT NOT NULL,
			priority TEXT NOT NULL,
			due_date TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Pending',
			created_at TEXT NOT NULL
		)`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
		),
		execStatements(
			`DROP INDEX IF EXISTS idx_tasks_user_id`,
			`DROP TABLE IF EXISTS tasks`,
		),
	)
}
