package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `t.id, t.column_id, t.creator_id, t.title, t.description, t.image_ref, t.ordinal, t.created_at, t.updated_at`

const taskOrder = `ORDER BY t.ordinal, t.created_at, t.id`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, column_id, creator_id, title, description, image_ref, ordinal, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ColumnID,
		nullableStringToValue(t.CreatorID),
		t.Title,
		nullableStringToValue(t.Description),
		nullableStringToValue(t.ImageRef),
		t.Ordinal,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

// ListByColumn returns the tasks of a column in display order.
func (r *SQLiteTaskRepo) ListByColumn(ctx context.Context, columnID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.column_id = ? ` + taskOrder
	rows, err := r.db.QueryContext(ctx, query, columnID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// ListByColumnWithCreator is ListByColumn joined with the creator's name.
// A missing or dangling creator yields a nil CreatorName.
func (r *SQLiteTaskRepo) ListByColumnWithCreator(ctx context.Context, columnID string) ([]domain.TaskWithCreator, error) {
	query := `SELECT ` + taskColumns + `, u.name
		FROM tasks t
		LEFT JOIN users u ON u.id = t.creator_id
		WHERE t.column_id = ? ` + taskOrder
	rows, err := r.db.QueryContext(ctx, query, columnID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks with creators: %w", err)
	}
	defer rows.Close()

	tasks := []domain.TaskWithCreator{}
	for rows.Next() {
		var creatorName sql.NullString
		t, err := scanTaskWith(rows, &creatorName)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, domain.TaskWithCreator{Task: *t, CreatorName: nullableString(creatorName)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// NextOrdinal returns max(ordinal)+1 over the column's tasks, or 0 when it
// has none. Callers must hold the write lock until the insert that uses it.
func (r *SQLiteTaskRepo) NextOrdinal(ctx context.Context, columnID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(ordinal), -1) + 1 FROM tasks WHERE column_id = ?`, columnID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("computing next task order for column %s: %w", columnID, err)
	}
	return next, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET column_id = ?, title = ?, description = ?, image_ref = ?, ordinal = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.ColumnID,
		t.Title,
		nullableStringToValue(t.Description),
		nullableStringToValue(t.ImageRef),
		t.Ordinal,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return affectedOne(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return affectedOne(res, "task", id)
}

func (r *SQLiteTaskRepo) DeleteByColumn(ctx context.Context, columnID string) (int, error) {
	return r.execCount(ctx, "deleting tasks of column "+columnID,
		`DELETE FROM tasks WHERE column_id = ?`, columnID)
}

func (r *SQLiteTaskRepo) DeleteByBoard(ctx context.Context, boardID string) (int, error) {
	return r.execCount(ctx, "deleting tasks of board "+boardID,
		`DELETE FROM tasks WHERE column_id IN (SELECT id FROM columns WHERE board_id = ?)`, boardID)
}

// ClearCreator nulls the creator of every task created by userID.
func (r *SQLiteTaskRepo) ClearCreator(ctx context.Context, userID string) (int, error) {
	return r.execCount(ctx, "clearing creator "+userID,
		`UPDATE tasks SET creator_id = NULL WHERE creator_id = ?`, userID)
}

func (r *SQLiteTaskRepo) execCount(ctx context.Context, op, query string, args ...any) (int, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return int(n), nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	return scanTaskWith(row)
}

// scanTaskWith scans the task columns followed by any extra destinations.
func scanTaskWith(row rowScanner, extra ...any) (*domain.Task, error) {
	var t domain.Task
	var creatorID, description, imageRef sql.NullString
	var createdAt, updatedAt string
	dest := []any{
		&t.ID, &t.ColumnID, &creatorID, &t.Title, &description, &imageRef,
		&t.Ordinal, &createdAt, &updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.CreatorID = nullableString(creatorID)
	t.Description = nullableString(description)
	t.ImageRef = nullableString(imageRef)

	var err error
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
