package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/repository"
	"github.com/google/uuid"
)

type boardService struct {
	boards   repository.BoardRepo
	uow      db.UnitOfWork
	cascade  *CascadeManager
	views    *BoardAggregator
	observer UseCaseObserver
}

func NewBoardService(
	boards repository.BoardRepo,
	uow db.UnitOfWork,
	cache BoardCache,
	observers ...UseCaseObserver,
) BoardService {
	return &boardService{
		boards:   boards,
		uow:      uow,
		cascade:  NewCascadeManager(uow),
		views:    NewBoardAggregator(uow, cache),
		observer: useCaseObserverOrNoop(observers),
	}
}

// ListBoards returns every board, oldest first.
func (s *boardService) ListBoards(ctx context.Context) (boards []*domain.Board, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "list-boards", nil)
	defer func() { err = uc.finish(err) }()

	boards, err = s.boards.List(ctx)
	if err != nil {
		return nil, err
	}
	if boards == nil {
		boards = []*domain.Board{}
	}
	uc.set("board_count", len(boards))
	return boards, nil
}

func (s *boardService) CreateBoard(ctx context.Context, in CreateBoardInput) (board *domain.Board, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "create-board", map[string]any{"owner_id": in.OwnerID})
	defer func() { err = uc.finish(err) }()

	now := time.Now().UTC()
	b := &domain.Board{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if b.Description != nil {
		b.Description = domain.OptionalText(*b.Description)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteUserRepo(tx).GetByID(ctx, b.OwnerID); err != nil {
			return fmt.Errorf("board owner: %w", err)
		}
		return repository.NewSQLiteBoardRepo(tx).Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	uc.set("board_id", b.ID)
	return b, nil
}

// GetBoardDetail returns the board with its ordered columns and tasks.
func (s *boardService) GetBoardDetail(ctx context.Context, id string) (view *domain.BoardView, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "get-board-detail", map[string]any{"board_id": id})
	defer func() { err = uc.finish(err) }()

	if err := requireID("board id", id); err != nil {
		return nil, err
	}
	view, status, err := s.views.Get(ctx, id)
	uc.set("cache", status)
	if err != nil {
		return nil, err
	}
	uc.set("column_count", len(view.Columns))
	uc.set("task_count", view.TaskCount())
	return view, nil
}

func (s *boardService) UpdateBoard(ctx context.Context, id string, patch domain.BoardPatch) (board *domain.Board, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "update-board", map[string]any{"board_id": id})
	defer func() { err = uc.finish(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		boards := repository.NewSQLiteBoardRepo(tx)
		b, err := boards.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := patch.Apply(b, time.Now().UTC()); err != nil {
			return err
		}
		if err := boards.Update(ctx, b); err != nil {
			return err
		}
		board = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc, s.views, id)
	return board, nil
}

// DeleteBoard removes the board with all of its columns and tasks.
func (s *boardService) DeleteBoard(ctx context.Context, id string) (err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "delete-board", map[string]any{"board_id": id})
	defer func() { err = uc.finish(err) }()

	res, err := s.cascade.DeleteBoard(ctx, id)
	if err != nil {
		return err
	}
	uc.set("deleted_columns", res.Columns)
	uc.set("deleted_tasks", res.Tasks)
	invalidate(ctx, uc, s.views, res.BoardIDs...)
	return nil
}

// invalidate drops cached views after a committed write. A failure is
// reported on the use case and otherwise ignored; cache entries expire.
func invalidate(ctx context.Context, uc *useCase, views *BoardAggregator, boardIDs ...string) {
	if err := views.Invalidate(ctx, boardIDs...); err != nil {
		uc.set("cache_invalidate_error", err.Error())
	}
}
