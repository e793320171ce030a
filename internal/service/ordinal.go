package service

import (
	"context"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/repository"
)

// OrdinalAllocator assigns and changes the order of columns within a board
// and of tasks within a column. Every method runs against the caller's
// transaction so that reading the current maximum and writing the row that
// uses it happen under one write lock.
type OrdinalAllocator struct{}

// NextColumnOrdinal returns the ordinal for a column appended to boardID.
func (OrdinalAllocator) NextColumnOrdinal(ctx context.Context, tx db.DBTX, boardID string) (int, error) {
	return repository.NewSQLiteColumnRepo(tx).NextOrdinal(ctx, boardID)
}

// NextTaskOrdinal returns the ordinal for a task appended to columnID.
func (OrdinalAllocator) NextTaskOrdinal(ctx context.Context, tx db.DBTX, columnID string) (int, error) {
	return repository.NewSQLiteTaskRepo(tx).NextOrdinal(ctx, columnID)
}

// ReorderColumn overrides the ordinal of c. Siblings are not renumbered, so
// gaps and duplicates are both possible afterwards.
func (OrdinalAllocator) ReorderColumn(c *domain.Column, ordinal int) error {
	if err := domain.ValidateOrdinal(ordinal); err != nil {
		return err
	}
	c.Ordinal = ordinal
	return nil
}

// ReorderTask overrides the ordinal of t within its current column.
func (OrdinalAllocator) ReorderTask(t *domain.Task, ordinal int) error {
	if err := domain.ValidateOrdinal(ordinal); err != nil {
		return err
	}
	t.Ordinal = ordinal
	return nil
}

// Move points t at columnID. With no explicit ordinal the task is appended
// to the destination column; the source column is left with a gap.
// The destination must exist.
func (a OrdinalAllocator) Move(ctx context.Context, tx db.DBTX, t *domain.Task, columnID string, ordinal *int) (*domain.Column, error) {
	dest, err := repository.NewSQLiteColumnRepo(tx).GetByID(ctx, columnID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.Validationf("column %s does not exist", columnID)
		}
		return nil, err
	}

	next := 0
	if ordinal != nil {
		if err := domain.ValidateOrdinal(*ordinal); err != nil {
			return nil, err
		}
		next = *ordinal
	} else {
		if next, err = a.NextTaskOrdinal(ctx, tx, columnID); err != nil {
			return nil, err
		}
	}
	t.ColumnID = columnID
	t.Ordinal = next
	return dest, nil
}
