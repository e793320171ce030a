package domain

import (
	"strings"
	"time"
)

// Task is a card inside a column. CreatorID is a weak reference: it may be
// nil and it may point at a user that no longer exists.
type Task struct {
	ID          string
	ColumnID    string
	CreatorID   *string
	Title       string
	Description *string
	ImageRef    *string
	Ordinal     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required to persist a task.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.ColumnID) == "" {
		return Validationf("column id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return Validationf("task title is required")
	}
	if t.CreatorID != nil {
		if err := ValidateRef("creator", *t.CreatorID); err != nil {
			return err
		}
	}
	return ValidateOrdinal(t.Ordinal)
}

// ImageAction says what an update does with a task image.
type ImageAction int

const (
	// ImageKeep leaves the current image untouched.
	ImageKeep ImageAction = iota
	// ImageReplace stores new image data and points the task at it.
	ImageReplace
	// ImageRemove clears the image reference.
	ImageRemove
)

func (a ImageAction) String() string {
	switch a {
	case ImageReplace:
		return "replace"
	case ImageRemove:
		return "remove"
	default:
		return "keep"
	}
}

// ImageUpload is raw image data handed to the image store.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// ImagePatch pairs an action with the upload used by ImageReplace.
type ImagePatch struct {
	Action ImageAction
	Upload *ImageUpload
}

// Validate rejects a replace without data.
func (p ImagePatch) Validate() error {
	if p.Action == ImageReplace && (p.Upload == nil || len(p.Upload.Data) == 0) {
		return Validationf("image data is required to replace an image")
	}
	return nil
}

// TaskPatch lists the task fields an update may change. A ColumnID that
// differs from the current column is a move.
type TaskPatch struct {
	Title       *string
	Description *string
	ColumnID    *string
	Ordinal     *int
	Image       ImagePatch
}

// Validate checks the supplied fields without touching a task.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Validationf("task title cannot be empty")
	}
	if p.ColumnID != nil && strings.TrimSpace(*p.ColumnID) == "" {
		return Validationf("column id cannot be empty")
	}
	if p.Ordinal != nil {
		if err := ValidateOrdinal(*p.Ordinal); err != nil {
			return err
		}
	}
	return p.Image.Validate()
}

// IsMove reports whether the patch reassigns t to another column.
func (p TaskPatch) IsMove(t *Task) bool {
	return p.ColumnID != nil && *p.ColumnID != t.ColumnID
}

// ApplyText writes the title and description onto t. An empty description
// clears it. Column, ordinal and image changes are handled by the caller.
func (p TaskPatch) ApplyText(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = OptionalText(*p.Description)
	}
}
