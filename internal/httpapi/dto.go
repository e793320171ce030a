package httpapi

import (
	"time"

	"github.com/alexanderramin/kanban/internal/domain"
)

type boardResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBoardResponse(b *domain.Board) boardResponse {
	return boardResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		OwnerID:     b.OwnerID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type columnResponse struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

func toColumnResponse(c *domain.Column) columnResponse {
	return columnResponse{
		ID:        c.ID,
		BoardID:   c.BoardID,
		Name:      c.Name,
		Order:     c.Ordinal,
		CreatedAt: c.CreatedAt,
	}
}

type taskResponse struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"columnId"`
	CreatorID   *string   `json:"creatorId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageRef    *string   `json:"imageRef"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		ColumnID:    t.ColumnID,
		CreatorID:   t.CreatorID,
		Title:       t.Title,
		Description: t.Description,
		ImageRef:    t.ImageRef,
		Order:       t.Ordinal,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type createBoardRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	UserID      string  `json:"userId"`
}

type updateBoardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type createColumnRequest struct {
	BoardID string `json:"boardId"`
	Name    string `json:"name"`
}

type updateColumnRequest struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

type createTaskRequest struct {
	ColumnID    string  `json:"columnId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// updateTaskRequest is decoded twice: once into this struct and once into
// a map to tell an absent image from an explicit null.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ColumnID    *string `json:"columnId"`
	Order       *int    `json:"order"`
	Image       *string `json:"image"`
}

type moveTaskRequest struct {
	ColumnID string `json:"columnId"`
	Order    *int   `json:"order"`
}

type createUserRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}
