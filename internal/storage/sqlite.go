package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteStore implements Store on a SQLite database. Insertion order is
// preserved by ordering scans on rowid, matching the memory store's
// list contract.
type SQLiteStore struct {
	db *sql.DB
}

func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) Close() error { return s.db.Close() }

const taskColumns = `id, owner_id, parent_id, title, description, status, kind,
	unit, target_value, position, deadline, created_at, updated_at`

func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ?
	`, id)
	return scanTask(row)
}

func (s *SQLiteStore) PutTask(ctx context.Context, t *Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			parent_id = excluded.parent_id,
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			kind = excluded.kind,
			unit = excluded.unit,
			target_value = excluded.target_value,
			position = excluded.position,
			deadline = excluded.deadline,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, t.ID, t.OwnerID, t.ParentID, t.Title, t.Description, t.Status, t.Kind,
		t.Unit, t.TargetValue, t.Position, t.Deadline, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("task put: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("task delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("task delete rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

const entryColumns = `id, task_id, value, note, recorded_at, created_at`

func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (*ProgressEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM progress_entries
		WHERE id = ?
	`, id)
	return scanEntry(row)
}

func (s *SQLiteStore) PutEntry(ctx context.Context, e *ProgressEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO progress_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.TaskID, e.Value, e.Note, e.RecordedAt, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("entry put: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteEntry(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM progress_entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("entry delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("entry delete rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) ListEntries(ctx context.Context) ([]ProgressEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM progress_entries
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("entry list: %w", err)
	}
	defer rows.Close()

	var out []ProgressEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entry list rows: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) DeleteBatch(ctx context.Context, taskIDs, entryIDs []string) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, id := range entryIDs {
			if _, err := tx.ExecContext(ctx, `DELETE FROM progress_entries WHERE id = ?`, id); err != nil {
				return fmt.Errorf("batch entry delete: %w", err)
			}
		}
		for _, id := range taskIDs {
			if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
				return fmt.Errorf("batch task delete: %w", err)
			}
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*Task, error) {
	var (
		id          string
		ownerID     string
		parent      sql.NullString
		title       string
		description sql.NullString
		status      string
		kind        string
		unit        sql.NullString
		target      sql.NullFloat64
		position    int
		deadline    sql.NullTime
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(
		&id, &ownerID, &parent, &title, &description, &status, &kind,
		&unit, &target, &position, &deadline, &createdAt, &updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	return &Task{
		ID:          id,
		OwnerID:     ownerID,
		ParentID:    nullStr(parent),
		Title:       title,
		Description: nullStr(description),
		Status:      status,
		Kind:        kind,
		Unit:        nullStr(unit),
		TargetValue: nullFloat(target),
		Position:    position,
		Deadline:    nullTime(deadline),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func scanEntry(row scanner) (*ProgressEntry, error) {
	var (
		id         string
		taskID     string
		value      float64
		note       sql.NullString
		recordedAt time.Time
		createdAt  time.Time
	)

	if err := row.Scan(&id, &taskID, &value, &note, &recordedAt, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("entry scan: %w", err)
	}

	return &ProgressEntry{
		ID:         id,
		TaskID:     taskID,
		Value:      value,
		Note:       nullStr(note),
		RecordedAt: recordedAt,
		CreatedAt:  createdAt,
	}, nil
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
