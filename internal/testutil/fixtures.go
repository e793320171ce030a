package testutil

import (
	"time"

	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/google/uuid"
)

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = &email
	}
}

func WithUserID(id string) UserOption {
	return func(u *domain.User) {
		u.ID = id
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Board options
type BoardOption func(*domain.Board)

func WithBoardDescription(d string) BoardOption {
	return func(b *domain.Board) {
		b.Description = &d
	}
}

func WithBoardCreatedAt(ts time.Time) BoardOption {
	return func(b *domain.Board) {
		b.CreatedAt = ts
		b.UpdatedAt = ts
	}
}

func NewTestBoard(ownerID, name string, opts ...BoardOption) *domain.Board {
	now := time.Now().UTC()
	b := &domain.Board{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Column options
type ColumnOption func(*domain.Column)

func WithColumnOrdinal(o int) ColumnOption {
	return func(c *domain.Column) {
		c.Ordinal = o
	}
}

func WithColumnCreatedAt(ts time.Time) ColumnOption {
	return func(c *domain.Column) {
		c.CreatedAt = ts
	}
}

func NewTestColumn(boardID, name string, opts ...ColumnOption) *domain.Column {
	c := &domain.Column{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Task options
type TaskOption func(*domain.Task)

func WithCreator(userID string) TaskOption {
	return func(t *domain.Task) {
		t.CreatorID = &userID
	}
}

func WithTaskOrdinal(o int) TaskOption {
	return func(t *domain.Task) {
		t.Ordinal = o
	}
}

func WithTaskDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = &d
	}
}

func WithImageRef(ref string) TaskOption {
	return func(t *domain.Task) {
		t.ImageRef = &ref
	}
}

func WithTaskCreatedAt(ts time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = ts
		t.UpdatedAt = ts
	}
}

func NewTestTask(columnID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		ColumnID:  columnID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
