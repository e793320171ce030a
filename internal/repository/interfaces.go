package repository

import (
	"context"

	"github.com/alexanderramin/kanban/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type BoardRepo interface {
	Create(ctx context.Context, b *domain.Board) error
	GetByID(ctx context.Context, id string) (*domain.Board, error)
	List(ctx context.Context) ([]*domain.Board, error)
	Update(ctx context.Context, b *domain.Board) error
	Delete(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	ReassignOwner(ctx context.Context, fromUserID, toUserID string) (int, error)
}

type ColumnRepo interface {
	Create(ctx context.Context, c *domain.Column) error
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error)
	NextOrdinal(ctx context.Context, boardID string) (int, error)
	Update(ctx context.Context, c *domain.Column) error
	Delete(ctx context.Context, id string) error
	DeleteByBoard(ctx context.Context, boardID string) (int, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByColumn(ctx context.Context, columnID string) ([]*domain.Task, error)
	ListByColumnWithCreator(ctx context.Context, columnID string) ([]domain.TaskWithCreator, error)
	NextOrdinal(ctx context.Context, columnID string) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteByColumn(ctx context.Context, columnID string) (int, error)
	DeleteByBoard(ctx context.Context, boardID string) (int, error)
	ClearCreator(ctx context.Context, userID string) (int, error)
}
