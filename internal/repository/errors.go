package repository

import "github.com/alexanderramin/kanban/internal/domain"

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = domain.ErrNotFound
