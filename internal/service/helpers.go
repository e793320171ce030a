package service

import (
	"errors"

	"github.com/alexanderramin/kanban/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// requireID rejects a blank identifier before any storage access.
func requireID(field, id string) error {
	if id == "" {
		return domain.Validationf("%s is required", field)
	}
	return nil
}

// distinct drops empty and repeated ids, keeping first-seen order.
func distinct(ids ...string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
