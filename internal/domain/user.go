package domain

import (
	"strings"
	"time"
)

// User is the external identity referenced by Board.OwnerID and Task.CreatorID.
type User struct {
	ID        string
	Name      string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return Validationf("user name is required")
	}
	if u.Email != nil && !strings.Contains(*u.Email, "@") {
		return Validationf("email %q is not valid", *u.Email)
	}
	return nil
}
