package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
)

// SQLiteBoardRepo implements BoardRepo using a SQLite database.
type SQLiteBoardRepo struct {
	db db.DBTX
}

// NewSQLiteBoardRepo creates a new SQLiteBoardRepo.
func NewSQLiteBoardRepo(conn db.DBTX) *SQLiteBoardRepo {
	return &SQLiteBoardRepo{db: conn}
}

const boardColumns = `id, name, description, owner_id, created_at, updated_at`

func (r *SQLiteBoardRepo) Create(ctx context.Context, b *domain.Board) error {
	query := `INSERT INTO boards (` + boardColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.Name,
		nullableStringToValue(b.Description),
		b.OwnerID,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting board: %w", err)
	}
	return nil
}

func (r *SQLiteBoardRepo) GetByID(ctx context.Context, id string) (*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE id = ?`
	b, err := scanBoard(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("board %s: %w", id, ErrNotFound)
	}
	return b, err
}

// List returns every board, oldest first.
func (r *SQLiteBoardRepo) List(ctx context.Context) ([]*domain.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	defer rows.Close()

	var boards []*domain.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boards: %w", err)
	}
	return boards, nil
}

func (r *SQLiteBoardRepo) Update(ctx context.Context, b *domain.Board) error {
	query := `UPDATE boards SET name = ?, description = ?, owner_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.Name,
		nullableStringToValue(b.Description),
		b.OwnerID,
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating board: %w", err)
	}
	return affectedOne(res, "board", b.ID)
}

func (r *SQLiteBoardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting board: %w", err)
	}
	return affectedOne(res, "board", id)
}

func (r *SQLiteBoardRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards WHERE owner_id = ?`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting boards for owner %s: %w", ownerID, err)
	}
	return n, nil
}

// ReassignOwner moves every board owned by fromUserID to toUserID and
// returns how many boards changed hands.
func (r *SQLiteBoardRepo) ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE boards SET owner_id = ? WHERE owner_id = ?`, toUserID, fromUserID)
	if err != nil {
		return 0, fmt.Errorf("reassigning boards from %s: %w", fromUserID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return int(n), nil
}

func scanBoard(row rowScanner) (*domain.Board, error) {
	var b domain.Board
	var description sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&b.ID, &b.Name, &description, &b.OwnerID, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning board: %w", err)
	}
	b.Description = nullableString(description)

	var err error
	if b.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
