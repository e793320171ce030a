package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	f := newKanbanFixture(t)
	ctx := context.Background()

	u, err := f.users.CreateUser(ctx, " Ada ", strPtr("ada@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)

	got, err := f.users.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", domain.Deref(got.Email))
}

func TestCreateUser_Validation(t *testing.T) {
	f := newKanbanFixture(t)
	ctx := context.Background()

	_, err := f.users.CreateUser(ctx, "", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.users.CreateUser(ctx, "Bob", strPtr("not-an-email"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateUser_DuplicateEmailConflicts(t *testing.T) {
	f := newKanbanFixture(t)
	ctx := context.Background()

	_, err := f.users.CreateUser(ctx, "A", strPtr("dup@example.com"))
	require.NoError(t, err)
	_, err = f.users.CreateUser(ctx, "B", strPtr("dup@example.com"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListUsers(t *testing.T) {
	f := newKanbanFixture(t)
	ctx := context.Background()

	users, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)

	f.user(t, "A")
	f.user(t, "B")
	users, err = f.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
