package migrations

func init() {
	RegisterGoMigration(1, "create_users",
		execStatements(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`),
		execStatements(`DROP TABLE IF EXISTS users`),
	)
}
