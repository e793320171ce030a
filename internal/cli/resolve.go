package cli

import (
	"context"
	"fmt"
	"strings"
)

// matchID resolves input against ids: exact match first, then a unique
// prefix. what names the entity in error messages.
func matchID(what, input string, ids []string) (string, error) {
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", what, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", what, input, len(matches))
	}
}

// resolveBoardID accepts a full board ID or a unique prefix of one.
func resolveBoardID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("board ID is required")
	}
	boards, err := app.Boards.ListBoards(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	return matchID("board", input, ids)
}

// resolveUserID accepts a full user ID, a unique prefix, or an exact
// (case-insensitive) display name.
func resolveUserID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("user ID is required")
	}
	users, err := app.Users.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(users))
	var byName []string
	for i, u := range users {
		ids[i] = u.ID
		if strings.EqualFold(u.Name, input) {
			byName = append(byName, u.ID)
		}
	}
	if id, err := matchID("user", input, ids); err == nil {
		return id, nil
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	return matchID("user", input, ids)
}
