package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/repository"
)

// BoardAggregator assembles a board with its ordered columns and tasks.
type BoardAggregator struct {
	uow   db.UnitOfWork
	cache BoardCache
}

func NewBoardAggregator(uow db.UnitOfWork, cache BoardCache) *BoardAggregator {
	return &BoardAggregator{uow: uow, cache: boardCacheOrNoop(cache)}
}

// Load reads the board view from one read snapshot. It returns a wrapped
// ErrNotFound when the board does not exist and never a partial view.
func (a *BoardAggregator) Load(ctx context.Context, boardID string) (*domain.BoardView, error) {
	var view *domain.BoardView
	err := a.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		board, err := repository.NewSQLiteBoardRepo(tx).GetByID(ctx, boardID)
		if err != nil {
			return err
		}
		cols, err := repository.NewSQLiteColumnRepo(tx).ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}

		tasks := repository.NewSQLiteTaskRepo(tx)
		v := domain.NewBoardView(board)
		for _, c := range cols {
			rows, err := tasks.ListByColumnWithCreator(ctx, c.ID)
			if err != nil {
				return fmt.Errorf("loading tasks of column %s: %w", c.ID, err)
			}
			v.AddColumn(c, rows)
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Get serves the view from the cache when possible and fills it on a miss.
// The board generation is read before loading, so a fill that races a
// committed write is rejected by the cache. Cache failures fall back to
// storage; the returned status is "hit", "miss" or "error" for telemetry.
func (a *BoardAggregator) Get(ctx context.Context, boardID string) (*domain.BoardView, string, error) {
	status := "miss"
	if cached, ok, err := a.cache.Get(ctx, boardID); err != nil {
		status = "error"
	} else if ok {
		return cached, "hit", nil
	}

	gen, genErr := a.cache.Generation(ctx, boardID)
	view, err := a.Load(ctx, boardID)
	if err != nil {
		return nil, status, err
	}
	if genErr != nil {
		return view, "error", nil
	}
	if err := a.cache.Set(ctx, view, gen); err != nil {
		status = "error"
	}
	return view, status, nil
}

// Invalidate drops cached views of the given boards.
func (a *BoardAggregator) Invalidate(ctx context.Context, boardIDs ...string) error {
	ids := distinct(boardIDs...)
	if len(ids) == 0 {
		return nil
	}
	return a.cache.Invalidate(ctx, ids...)
}

// InvalidateAll drops every cached view.
func (a *BoardAggregator) InvalidateAll(ctx context.Context) error {
	return a.cache.InvalidateAll(ctx)
}
