package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and the
// whole list is re-applied on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS boards (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL CHECK(length(name) > 0),
		description TEXT,
		owner_id    TEXT NOT NULL REFERENCES users(id),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS columns (
		id         TEXT PRIMARY KEY,
		board_id   TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		name       TEXT NOT NULL CHECK(length(name) > 0),
		ordinal    INTEGER NOT NULL DEFAULT 0 CHECK(ordinal >= 0),
		created_at TEXT NOT NULL
	)`,

	// creator_id is a weak reference: no foreign key, dangling values are legal.
	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		column_id   TEXT NOT NULL REFERENCES columns(id) ON DELETE CASCADE,
		creator_id  TEXT,
		title       TEXT NOT NULL CHECK(length(title) > 0),
		description TEXT,
		image_ref   TEXT,
		ordinal     INTEGER NOT NULL DEFAULT 0 CHECK(ordinal >= 0),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS images (
		ref          TEXT PRIMARY KEY,
		content_type TEXT NOT NULL,
		size         INTEGER NOT NULL,
		data         BLOB NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_boards_owner ON boards(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_boards_created ON boards(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_columns_board_order ON columns(board_id, ordinal, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_column_order ON tasks(column_id, ordinal, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_creator ON tasks(creator_id)`,
}
