package service

import (
	"context"

	"github.com/alexanderramin/kanban/internal/domain"
)

type BoardService interface {
	ListBoards(ctx context.Context) ([]*domain.Board, error)
	CreateBoard(ctx context.Context, in CreateBoardInput) (*domain.Board, error)
	GetBoardDetail(ctx context.Context, id string) (*domain.BoardView, error)
	UpdateBoard(ctx context.Context, id string, patch domain.BoardPatch) (*domain.Board, error)
	DeleteBoard(ctx context.Context, id string) error
}

type ColumnService interface {
	GetColumn(ctx context.Context, id string) (*domain.Column, error)
	CreateColumn(ctx context.Context, boardID, name string) (*domain.Column, error)
	UpdateColumn(ctx context.Context, id string, patch domain.ColumnPatch) (*domain.Column, error)
	DeleteColumn(ctx context.Context, id string) error
}

type TaskService interface {
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	MoveTask(ctx context.Context, id, columnID string, ordinal *int) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type UserService interface {
	CreateUser(ctx context.Context, name string, email *string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id string, reassignTo *string) error
}

// CreateBoardInput carries the fields of a new board.
type CreateBoardInput struct {
	Name        string
	Description *string
	OwnerID     string
}

// CreateTaskInput carries the fields of a new task. Image, when set, is
// handed to the image store and the task keeps the returned reference.
type CreateTaskInput struct {
	ColumnID    string
	Title       string
	Description *string
	CreatorID   *string
	Image       *domain.ImageUpload
}

// BoardCache stores assembled board views. Implementations must be safe for
// concurrent use; a miss is (nil, false, nil).
//
// Generation returns a token that changes whenever the board is
// invalidated. Set stores the view only while the board is still at that
// generation, so a view loaded before a concurrent write is discarded.
type BoardCache interface {
	Get(ctx context.Context, boardID string) (*domain.BoardView, bool, error)
	Generation(ctx context.Context, boardID string) (string, error)
	Set(ctx context.Context, view *domain.BoardView, gen string) error
	Invalidate(ctx context.Context, boardIDs ...string) error
	InvalidateAll(ctx context.Context) error
}

// ImageStore is the part of the image collaborator the mutation handlers need.
type ImageStore interface {
	Put(ctx context.Context, data []byte, contentType string) (string, error)
}

type noopBoardCache struct{}

func (noopBoardCache) Get(context.Context, string) (*domain.BoardView, bool, error) {
	return nil, false, nil
}
func (noopBoardCache) Generation(context.Context, string) (string, error)   { return "", nil }
func (noopBoardCache) Set(context.Context, *domain.BoardView, string) error { return nil }
func (noopBoardCache) Invalidate(context.Context, ...string) error          { return nil }
func (noopBoardCache) InvalidateAll(context.Context) error                  { return nil }

func boardCacheOrNoop(c BoardCache) BoardCache {
	if c == nil {
		return noopBoardCache{}
	}
	return c
}
