package service

import (
	"context"
	"time"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/repository"
	"github.com/google/uuid"
)

type columnService struct {
	columns  repository.ColumnRepo
	uow      db.UnitOfWork
	ordinals OrdinalAllocator
	cascade  *CascadeManager
	views    *BoardAggregator
	observer UseCaseObserver
}

func NewColumnService(
	columns repository.ColumnRepo,
	uow db.UnitOfWork,
	cache BoardCache,
	observers ...UseCaseObserver,
) ColumnService {
	return &columnService{
		columns:  columns,
		uow:      uow,
		cascade:  NewCascadeManager(uow),
		views:    NewBoardAggregator(uow, cache),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *columnService) GetColumn(ctx context.Context, id string) (column *domain.Column, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "get-column", map[string]any{"column_id": id})
	defer func() { err = uc.finish(err) }()

	if err := requireID("column id", id); err != nil {
		return nil, err
	}
	return s.columns.GetByID(ctx, id)
}

// CreateColumn appends a column to the end of the board.
func (s *columnService) CreateColumn(ctx context.Context, boardID, name string) (column *domain.Column, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "create-column", map[string]any{"board_id": boardID})
	defer func() { err = uc.finish(err) }()

	c := &domain.Column{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteBoardRepo(tx).GetByID(ctx, boardID); err != nil {
			if isNotFound(err) {
				return domain.Validationf("board %s does not exist", boardID)
			}
			return err
		}
		next, err := s.ordinals.NextColumnOrdinal(ctx, tx, boardID)
		if err != nil {
			return err
		}
		c.Ordinal = next
		return repository.NewSQLiteColumnRepo(tx).Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	uc.set("column_id", c.ID)
	uc.set("order", c.Ordinal)
	invalidate(ctx, uc, s.views, boardID)
	return c, nil
}

// UpdateColumn renames the column and/or overrides its ordinal.
func (s *columnService) UpdateColumn(ctx context.Context, id string, patch domain.ColumnPatch) (column *domain.Column, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "update-column", map[string]any{"column_id": id})
	defer func() { err = uc.finish(err) }()

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		columns := repository.NewSQLiteColumnRepo(tx)
		c, err := columns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := patch.Apply(c); err != nil {
			return err
		}
		if patch.Ordinal != nil {
			if err := s.ordinals.ReorderColumn(c, *patch.Ordinal); err != nil {
				return err
			}
		}
		if err := columns.Update(ctx, c); err != nil {
			return err
		}
		column = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc, s.views, column.BoardID)
	return column, nil
}

// DeleteColumn removes the column with its tasks.
func (s *columnService) DeleteColumn(ctx context.Context, id string) (err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "delete-column", map[string]any{"column_id": id})
	defer func() { err = uc.finish(err) }()

	res, err := s.cascade.DeleteColumn(ctx, id)
	if err != nil {
		return err
	}
	uc.set("deleted_tasks", res.Tasks)
	invalidate(ctx, uc, s.views, res.BoardIDs...)
	return nil
}
