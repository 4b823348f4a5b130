package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS todos (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		title          TEXT NOT NULL DEFAULT '',
		date_added     TEXT NOT NULL DEFAULT '',
		date_completed TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_date_completed ON todos(date_completed)`,
}
