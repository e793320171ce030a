package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/repository"
)

// CascadeResult reports what a cascading delete touched.
type CascadeResult struct {
	// BoardIDs lists the boards whose views changed.
	BoardIDs []string
	Columns  int
	Tasks    int
	// Reassigned counts boards moved to a new owner by a user deletion.
	Reassigned int
	// Detached counts tasks whose creator reference was cleared.
	Detached int
}

// CascadeManager deletes an entity together with everything that depends on
// it. Each delete is one transaction: children first, then the parent, and
// any failing step rolls the whole unit back. The schema's ON DELETE CASCADE
// clauses stay in place as a backstop only.
type CascadeManager struct {
	uow db.UnitOfWork
}

func NewCascadeManager(uow db.UnitOfWork) *CascadeManager {
	return &CascadeManager{uow: uow}
}

// DeleteBoard removes the board, its columns and all of their tasks.
func (m *CascadeManager) DeleteBoard(ctx context.Context, id string) (CascadeResult, error) {
	var res CascadeResult
	err := m.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		boards := repository.NewSQLiteBoardRepo(tx)
		if _, err := boards.GetByID(ctx, id); err != nil {
			return err
		}

		var err error
		if res.Tasks, err = repository.NewSQLiteTaskRepo(tx).DeleteByBoard(ctx, id); err != nil {
			return err
		}
		if res.Columns, err = repository.NewSQLiteColumnRepo(tx).DeleteByBoard(ctx, id); err != nil {
			return err
		}
		if err := boards.Delete(ctx, id); err != nil {
			return err
		}
		res.BoardIDs = []string{id}
		return nil
	})
	if err != nil {
		return CascadeResult{}, fmt.Errorf("deleting board %s: %w", id, err)
	}
	return res, nil
}

// DeleteColumn removes the column and its tasks.
func (m *CascadeManager) DeleteColumn(ctx context.Context, id string) (CascadeResult, error) {
	var res CascadeResult
	err := m.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		columns := repository.NewSQLiteColumnRepo(tx)
		col, err := columns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if res.Tasks, err = repository.NewSQLiteTaskRepo(tx).DeleteByColumn(ctx, id); err != nil {
			return err
		}
		if err := columns.Delete(ctx, id); err != nil {
			return err
		}
		res.Columns = 1
		res.BoardIDs = []string{col.BoardID}
		return nil
	})
	if err != nil {
		return CascadeResult{}, fmt.Errorf("deleting column %s: %w", id, err)
	}
	return res, nil
}

// DeleteTask removes a single task.
func (m *CascadeManager) DeleteTask(ctx context.Context, id string) (CascadeResult, error) {
	var res CascadeResult
	err := m.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		task, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		col, err := repository.NewSQLiteColumnRepo(tx).GetByID(ctx, task.ColumnID)
		if err != nil {
			return err
		}
		if err := tasks.Delete(ctx, id); err != nil {
			return err
		}
		res.Tasks = 1
		res.BoardIDs = []string{col.BoardID}
		return nil
	})
	if err != nil {
		return CascadeResult{}, fmt.Errorf("deleting task %s: %w", id, err)
	}
	return res, nil
}

// DeleteUser removes a user. Tasks they created survive with the creator
// cleared. Boards they own block the delete unless reassignTo names another
// existing user, in which case ownership moves there first.
func (m *CascadeManager) DeleteUser(ctx context.Context, id string, reassignTo *string) (CascadeResult, error) {
	if reassignTo != nil && *reassignTo == id {
		return CascadeResult{}, domain.Validationf("cannot reassign boards of user %s to the same user", id)
	}

	var res CascadeResult
	err := m.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLiteUserRepo(tx)
		boards := repository.NewSQLiteBoardRepo(tx)

		if _, err := users.GetByID(ctx, id); err != nil {
			return err
		}
		owned, err := boards.CountByOwner(ctx, id)
		if err != nil {
			return err
		}
		if reassignTo != nil {
			if _, err := users.GetByID(ctx, *reassignTo); err != nil {
				return fmt.Errorf("reassignment target: %w", err)
			}
		}
		if owned > 0 {
			if reassignTo == nil {
				return domain.Conflictf("user %s owns %d board(s); supply a reassignment target", id, owned)
			}
			if res.Reassigned, err = boards.ReassignOwner(ctx, id, *reassignTo); err != nil {
				return err
			}
		}
		if res.Detached, err = repository.NewSQLiteTaskRepo(tx).ClearCreator(ctx, id); err != nil {
			return err
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		return CascadeResult{}, fmt.Errorf("deleting user %s: %w", id, err)
	}
	return res, nil
}
