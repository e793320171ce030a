package domain

import "time"

// BoardView is the nested read model returned by the board aggregator.
type BoardView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	OwnerID     string       `json:"ownerId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Columns     []ColumnView `json:"columns"`
}

// ColumnView is one column of a BoardView. Tasks is never nil.
type ColumnView struct {
	ID        string     `json:"id"`
	BoardID   string     `json:"boardId"`
	Name      string     `json:"name"`
	Ordinal   int        `json:"order"`
	CreatedAt time.Time  `json:"createdAt"`
	Tasks     []TaskView `json:"tasks"`
}

// TaskView is a task enriched with its creator's display name.
type TaskView struct {
	ID          string    `json:"id"`
	ColumnID    string    `json:"columnId"`
	CreatorID   *string   `json:"creatorId"`
	CreatorName *string   `json:"creatorName"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ImageRef    *string   `json:"imageRef"`
	Ordinal     int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskWithCreator is a task row joined with the creator's display name.
type TaskWithCreator struct {
	Task
	CreatorName *string
}

// NewBoardView starts a view from the board row.
func NewBoardView(b *Board) *BoardView {
	return &BoardView{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		OwnerID:     b.OwnerID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		Columns:     []ColumnView{},
	}
}

// AddColumn appends c with its tasks in the order given.
func (v *BoardView) AddColumn(c *Column, tasks []TaskWithCreator) {
	cv := ColumnView{
		ID:        c.ID,
		BoardID:   c.BoardID,
		Name:      c.Name,
		Ordinal:   c.Ordinal,
		CreatedAt: c.CreatedAt,
		Tasks:     make([]TaskView, 0, len(tasks)),
	}
	for _, t := range tasks {
		cv.Tasks = append(cv.Tasks, TaskView{
			ID:          t.ID,
			ColumnID:    t.ColumnID,
			CreatorID:   t.CreatorID,
			CreatorName: t.CreatorName,
			Title:       t.Title,
			Description: t.Description,
			ImageRef:    t.ImageRef,
			Ordinal:     t.Ordinal,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	v.Columns = append(v.Columns, cv)
}

// TaskCount returns the number of tasks across all columns.
func (v *BoardView) TaskCount() int {
	n := 0
	for _, c := range v.Columns {
		n += len(c.Tasks)
	}
	return n
}
