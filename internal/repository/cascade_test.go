package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/kanban/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_BoardToColumnsAndTasks verifies the foreign-key backstop:
// deleting a board row alone removes its columns and their tasks.
func TestCascadeDelete_BoardToColumnsAndTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	c := seedColumn(t, db, "Todo")
	task := testutil.NewTestTask(c.ID, "T")
	require.NoError(t, NewSQLiteTaskRepo(db).Create(ctx, task))

	require.NoError(t, NewSQLiteBoardRepo(db).Delete(ctx, c.BoardID))

	_, err := NewSQLiteColumnRepo(db).GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound, "column should be cascade-deleted with its board")
	_, err = NewSQLiteTaskRepo(db).GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound, "task should be cascade-deleted with its board")
}

// TestCascadeDelete_ExplicitByBoard verifies the explicit bulk deletes used by
// board deletion leave sibling boards alone.
func TestCascadeDelete_ExplicitByBoard(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	tasks := NewSQLiteTaskRepo(db)
	cols := NewSQLiteColumnRepo(db)

	doomed := seedColumn(t, db, "Doomed")
	kept := seedColumn(t, db, "Kept")
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(doomed.ID, "A")))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(doomed.ID, "B")))
	keptTask := testutil.NewTestTask(kept.ID, "C")
	require.NoError(t, tasks.Create(ctx, keptTask))

	n, err := tasks.DeleteByBoard(ctx, doomed.BoardID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = cols.DeleteByBoard(ctx, doomed.BoardID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = tasks.GetByID(ctx, keptTask.ID)
	assert.NoError(t, err)
	_, err = cols.GetByID(ctx, kept.ID)
	assert.NoError(t, err)
}

func TestCascadeDelete_ColumnToTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	tasks := NewSQLiteTaskRepo(db)

	c := seedColumn(t, db, "Todo")
	task := testutil.NewTestTask(c.ID, "T")
	require.NoError(t, tasks.Create(ctx, task))

	n, err := tasks.DeleteByColumn(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, NewSQLiteColumnRepo(db).Delete(ctx, c.ID))

	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestDeleteUser_OwnerReferenceBlocks verifies owner_id is a hard reference.
func TestDeleteUser_OwnerReferenceBlocks(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	b := seedBoard(t, db, "Owned")
	err := NewSQLiteUserRepo(db).Delete(ctx, b.OwnerID)
	assert.Error(t, err, "deleting an owner with boards must violate the foreign key")
}
