package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
)

// SQLiteColumnRepo implements ColumnRepo using a SQLite database.
type SQLiteColumnRepo struct {
	db db.DBTX
}

// NewSQLiteColumnRepo creates a new SQLiteColumnRepo.
func NewSQLiteColumnRepo(conn db.DBTX) *SQLiteColumnRepo {
	return &SQLiteColumnRepo{db: conn}
}

const columnColumns = `id, board_id, name, ordinal, created_at`

func (r *SQLiteColumnRepo) Create(ctx context.Context, c *domain.Column) error {
	query := `INSERT INTO columns (` + columnColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.BoardID,
		c.Name,
		c.Ordinal,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting column: %w", err)
	}
	return nil
}

func (r *SQLiteColumnRepo) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE id = ?`
	c, err := scanColumn(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("column %s: %w", id, ErrNotFound)
	}
	return c, err
}

// ListByBoard returns the columns of a board in display order.
func (r *SQLiteColumnRepo) ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM columns WHERE board_id = ?
		ORDER BY ordinal, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	defer rows.Close()

	var cols []*domain.Column
	for rows.Next() {
		c, err := scanColumn(rows)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating columns: %w", err)
	}
	return cols, nil
}

// NextOrdinal returns max(ordinal)+1 over the board's columns, or 0 when it
// has none. Callers must hold the write lock until the insert that uses it.
func (r *SQLiteColumnRepo) NextOrdinal(ctx context.Context, boardID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(ordinal), -1) + 1 FROM columns WHERE board_id = ?`, boardID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("computing next column order for board %s: %w", boardID, err)
	}
	return next, nil
}

func (r *SQLiteColumnRepo) Update(ctx context.Context, c *domain.Column) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE columns SET name = ?, ordinal = ? WHERE id = ?`, c.Name, c.Ordinal, c.ID)
	if err != nil {
		return fmt.Errorf("updating column: %w", err)
	}
	return affectedOne(res, "column", c.ID)
}

func (r *SQLiteColumnRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting column: %w", err)
	}
	return affectedOne(res, "column", id)
}

func (r *SQLiteColumnRepo) DeleteByBoard(ctx context.Context, boardID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM columns WHERE board_id = ?`, boardID)
	if err != nil {
		return 0, fmt.Errorf("deleting columns of board %s: %w", boardID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return int(n), nil
}

func scanColumn(row rowScanner) (*domain.Column, error) {
	var c domain.Column
	var createdAt string
	if err := row.Scan(&c.ID, &c.BoardID, &c.Name, &c.Ordinal, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning column: %w", err)
	}
	var err error
	if c.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}
