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

type taskService struct {
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	images   ImageStore
	ordinals OrdinalAllocator
	cascade  *CascadeManager
	views    *BoardAggregator
	observer UseCaseObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	images ImageStore,
	cache BoardCache,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:    tasks,
		uow:      uow,
		images:   images,
		cascade:  NewCascadeManager(uow),
		views:    NewBoardAggregator(uow, cache),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) GetTask(ctx context.Context, id string) (task *domain.Task, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "get-task", map[string]any{"task_id": id})
	defer func() { err = uc.finish(err) }()

	if err := requireID("task id", id); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id)
}

// CreateTask appends a task to the end of its column.
func (s *taskService) CreateTask(ctx context.Context, in CreateTaskInput) (task *domain.Task, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "create-task", map[string]any{"column_id": in.ColumnID})
	defer func() { err = uc.finish(err) }()

	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ColumnID:  in.ColumnID,
		CreatorID: in.CreatorID,
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		t.Description = domain.OptionalText(*in.Description)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if in.Image != nil {
		ref, err := s.storeImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		t.ImageRef = &ref
		uc.set("image_ref", ref)
	}

	var boardID string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		col, err := repository.NewSQLiteColumnRepo(tx).GetByID(ctx, t.ColumnID)
		if err != nil {
			if isNotFound(err) {
				return domain.Validationf("column %s does not exist", t.ColumnID)
			}
			return err
		}
		boardID = col.BoardID
		if t.Ordinal, err = s.ordinals.NextTaskOrdinal(ctx, tx, t.ColumnID); err != nil {
			return err
		}
		return repository.NewSQLiteTaskRepo(tx).Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	uc.set("task_id", t.ID)
	uc.set("order", t.Ordinal)
	invalidate(ctx, uc, s.views, boardID)
	return t, nil
}

// UpdateTask applies a partial update. A different column in the patch
// moves the task; without an explicit ordinal it is appended there.
func (s *taskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (task *domain.Task, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "update-task", map[string]any{
		"task_id":      id,
		"image_action": patch.Image.Action.String(),
	})
	defer func() { err = uc.finish(err) }()

	return s.update(ctx, uc, id, patch, false)
}

// MoveTask reassigns the task to columnID. Moving within the same column
// without an ordinal sends the task to the end.
func (s *taskService) MoveTask(ctx context.Context, id, columnID string, ordinal *int) (task *domain.Task, err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "move-task", map[string]any{
		"task_id":   id,
		"column_id": columnID,
	})
	defer func() { err = uc.finish(err) }()

	if err := requireID("column id", columnID); err != nil {
		return nil, err
	}
	return s.update(ctx, uc, id, domain.TaskPatch{ColumnID: &columnID, Ordinal: ordinal}, true)
}

func (s *taskService) update(ctx context.Context, uc *useCase, id string, patch domain.TaskPatch, forceMove bool) (*domain.Task, error) {
	if err := requireID("task id", id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var newRef string
	if patch.Image.Action == domain.ImageReplace {
		ref, err := s.storeImage(ctx, patch.Image.Upload)
		if err != nil {
			return nil, err
		}
		newRef = ref
		uc.set("image_ref", ref)
	}

	var task *domain.Task
	var boardIDs []string
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		t, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}
		src, err := repository.NewSQLiteColumnRepo(tx).GetByID(ctx, t.ColumnID)
		if err != nil {
			return err
		}
		boardIDs = append(boardIDs, src.BoardID)

		patch.ApplyText(t)
		switch {
		case forceMove || patch.IsMove(t):
			dest, err := s.ordinals.Move(ctx, tx, t, *patch.ColumnID, patch.Ordinal)
			if err != nil {
				return err
			}
			boardIDs = append(boardIDs, dest.BoardID)
			uc.set("from_column_id", src.ID)
		case patch.Ordinal != nil:
			if err := s.ordinals.ReorderTask(t, *patch.Ordinal); err != nil {
				return err
			}
		}

		switch patch.Image.Action {
		case domain.ImageReplace:
			t.ImageRef = &newRef
		case domain.ImageRemove:
			t.ImageRef = nil
		}

		t.UpdatedAt = time.Now().UTC()
		if err := tasks.Update(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.set("order", task.Ordinal)
	invalidate(ctx, uc, s.views, boardIDs...)
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id string) (err error) {
	ctx, uc := beginUseCase(ctx, s.observer, "delete-task", map[string]any{"task_id": id})
	defer func() { err = uc.finish(err) }()

	res, err := s.cascade.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	invalidate(ctx, uc, s.views, res.BoardIDs...)
	return nil
}

// storeImage hands the upload to the image store outside any transaction.
// A transaction that later rolls back leaves the blob unreferenced.
func (s *taskService) storeImage(ctx context.Context, img *domain.ImageUpload) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", domain.Validationf("image data is empty")
	}
	if s.images == nil {
		return "", domain.Validationf("image uploads are not configured")
	}
	ref, err := s.images.Put(ctx, img.Data, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("storing image: %w", err)
	}
	return ref, nil
}
