package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/kanban/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnRepo_NextOrdinal(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	b := seedBoard(t, db, "B")
	repo := NewSQLiteColumnRepo(db)

	next, err := repo.NextOrdinal(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, next, "empty board starts at 0")

	for _, o := range []int{0, 2, 5} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestColumn(b.ID, "C", testutil.WithColumnOrdinal(o))))
	}
	next, err = repo.NextOrdinal(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, next)
}

func TestColumnRepo_ListByBoardOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	b := seedBoard(t, db, "B")
	other := seedBoard(t, db, "Other")
	repo := NewSQLiteColumnRepo(db)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testutil.NewTestColumn(b.ID, "Done", testutil.WithColumnOrdinal(2), testutil.WithColumnCreatedAt(base))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestColumn(b.ID, "Doing-late", testutil.WithColumnOrdinal(1), testutil.WithColumnCreatedAt(base.Add(time.Second)))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestColumn(b.ID, "Doing-early", testutil.WithColumnOrdinal(1), testutil.WithColumnCreatedAt(base))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestColumn(other.ID, "Elsewhere")))

	cols, err := repo.ListByBoard(ctx, b.ID)
	require.NoError(t, err)
	var names []string
	for _, c := range cols {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Doing-early", "Doing-late", "Done"}, names)
}

func TestColumnRepo_UpdateDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	b := seedBoard(t, db, "B")
	repo := NewSQLiteColumnRepo(db)

	c := testutil.NewTestColumn(b.ID, "Todo")
	require.NoError(t, repo.Create(ctx, c))

	c.Name = "Backlog"
	c.Ordinal = 7
	require.NoError(t, repo.Update(ctx, c))
	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backlog", got.Name)
	assert.Equal(t, 7, got.Ordinal)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestColumnRepo_CreateRejectsUnknownBoard(t *testing.T) {
	db := testutil.NewTestDB(t)
	err := NewSQLiteColumnRepo(db).Create(context.Background(), testutil.NewTestColumn("missing", "C"))
	assert.Error(t, err)
}
