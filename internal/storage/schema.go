package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			parent_id TEXT NULL,
			title TEXT NOT NULL,
			description TEXT,

			status TEXT NOT NULL DEFAULT 'pending',
			kind TEXT NOT NULL DEFAULT 'leaf',
			unit TEXT,
			target_value REAL,
			position INTEGER NOT NULL DEFAULT 0,
			deadline DATETIME,

			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,

			FOREIGN KEY(parent_id) REFERENCES tasks(id)
		);`,
		`CREATE TABLE IF NOT EXISTS progress_entries (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			value REAL NOT NULL,
			note TEXT,
			recorded_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(task_id) REFERENCES tasks(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_parent_id ON tasks(parent_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_owner_id ON tasks(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_progress_entries_task_id ON progress_entries(task_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
