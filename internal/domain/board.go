package domain

import (
	"strings"
	"time"
)

// Board is the aggregate root of a column/task subtree.
type Board struct {
	ID          string
	Name        string
	Description *string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields required to persist a board.
func (b *Board) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return Validationf("board name is required")
	}
	if err := ValidateRef("owner", b.OwnerID); err != nil {
		return err
	}
	return nil
}

// BoardPatch lists the board fields an update may change. Nil fields are
// left untouched; an empty Description clears it.
type BoardPatch struct {
	Name        *string
	Description *string
}

// Apply validates the patch and writes it onto b.
func (p BoardPatch) Apply(b *Board, now time.Time) error {
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return Validationf("board name cannot be empty")
		}
		b.Name = *p.Name
	}
	if p.Description != nil {
		b.Description = OptionalText(*p.Description)
	}
	b.UpdatedAt = now
	return nil
}
