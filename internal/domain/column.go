package domain

import (
	"strings"
	"time"
)

// Column is an ordered lane of a board. BoardID never changes after creation.
type Column struct {
	ID        string
	BoardID   string
	Name      string
	Ordinal   int
	CreatedAt time.Time
}

// Validate checks the fields required to persist a column.
func (c *Column) Validate() error {
	if strings.TrimSpace(c.BoardID) == "" {
		return Validationf("board id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return Validationf("column name is required")
	}
	return ValidateOrdinal(c.Ordinal)
}

// ColumnPatch renames a column and/or overrides its ordinal. Apply only
// handles the name; the ordinal override goes through the ordinal allocator.
type ColumnPatch struct {
	Name    *string
	Ordinal *int
}

// Validate checks the supplied fields without touching a column.
func (p ColumnPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return Validationf("column name cannot be empty")
	}
	if p.Ordinal != nil {
		return ValidateOrdinal(*p.Ordinal)
	}
	return nil
}

// Apply validates the patch and writes the name onto c.
func (p ColumnPatch) Apply(c *Column) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	return nil
}
