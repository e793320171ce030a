package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/testutil"
	"github.com/stretchr/testify/require"
)

// seedBoard creates an owner and a board and returns the board.
func seedBoard(t *testing.T, conn db.DBTX, name string) *domain.Board {
	t.Helper()
	ctx := context.Background()
	owner := testutil.NewTestUser("Owner of " + name)
	require.NoError(t, NewSQLiteUserRepo(conn).Create(ctx, owner))
	b := testutil.NewTestBoard(owner.ID, name)
	require.NoError(t, NewSQLiteBoardRepo(conn).Create(ctx, b))
	return b
}

// seedColumn creates a board with one column and returns the column.
func seedColumn(t *testing.T, conn db.DBTX, name string) *domain.Column {
	t.Helper()
	b := seedBoard(t, conn, "Board of "+name)
	c := testutil.NewTestColumn(b.ID, name)
	require.NoError(t, NewSQLiteColumnRepo(conn).Create(context.Background(), c))
	return c
}
