package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/repository"
	"github.com/alexanderramin/kanban/internal/testutil"
	"github.com/stretchr/testify/require"
)

type fakeImageStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{blobs: map[string][]byte{}}
}

func (f *fakeImageStore) Put(_ context.Context, data []byte, _ string) (string, error) {
	sum := sha256.Sum256(data)
	ref := "sha256-" + hex.EncodeToString(sum[:])
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[ref] = data
	return ref, nil
}

type fakeBoardCache struct {
	mu          sync.Mutex
	views       map[string]*domain.BoardView
	gens        map[string]int
	epoch       int
	gets        int
	invalidated []string
	cleared     int
}

func newFakeBoardCache() *fakeBoardCache {
	return &fakeBoardCache{views: map[string]*domain.BoardView{}, gens: map[string]int{}}
}

func (c *fakeBoardCache) Generation(_ context.Context, id string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation(id), nil
}

func (c *fakeBoardCache) generation(id string) string {
	return fmt.Sprintf("%d:%d", c.epoch, c.gens[id])
}

func (c *fakeBoardCache) Get(_ context.Context, id string) (*domain.BoardView, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.views[id]
	return v, ok, nil
}

func (c *fakeBoardCache) Set(_ context.Context, v *domain.BoardView, gen string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.generation(v.ID) {
		c.views[v.ID] = v
	}
	return nil
}

func (c *fakeBoardCache) Invalidate(_ context.Context, ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.views, id)
		c.gens[id]++
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

func (c *fakeBoardCache) InvalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = map[string]*domain.BoardView{}
	c.epoch++
	c.cleared++
	return nil
}

// kanbanFixture wires every service over one in-memory database.
type kanbanFixture struct {
	database *sql.DB
	uow      db.UnitOfWork
	images   *fakeImageStore
	cache    *fakeBoardCache
	boards   BoardService
	columns  ColumnService
	tasks    TaskService
	users    UserService
}

func newKanbanFixture(t *testing.T) *kanbanFixture {
	t.Helper()
	return newKanbanFixtureOn(t, testutil.NewTestDB(t))
}

func newKanbanFixtureOn(t *testing.T, database *sql.DB) *kanbanFixture {
	t.Helper()
	uow := testutil.NewTestUoW(database)
	f := &kanbanFixture{
		database: database,
		uow:      uow,
		images:   newFakeImageStore(),
		cache:    newFakeBoardCache(),
	}
	f.boards = NewBoardService(repository.NewSQLiteBoardRepo(database), uow, f.cache)
	f.columns = NewColumnService(repository.NewSQLiteColumnRepo(database), uow, f.cache)
	f.tasks = NewTaskService(repository.NewSQLiteTaskRepo(database), uow, f.images, f.cache)
	f.users = NewUserService(repository.NewSQLiteUserRepo(database), uow, f.cache)
	return f
}

func (f *kanbanFixture) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), name, nil)
	require.NoError(t, err)
	return u
}

func (f *kanbanFixture) board(t *testing.T, ownerID, name string) *domain.Board {
	t.Helper()
	b, err := f.boards.CreateBoard(context.Background(), CreateBoardInput{Name: name, OwnerID: ownerID})
	require.NoError(t, err)
	return b
}

func (f *kanbanFixture) column(t *testing.T, boardID, name string) *domain.Column {
	t.Helper()
	c, err := f.columns.CreateColumn(context.Background(), boardID, name)
	require.NoError(t, err)
	return c
}

func (f *kanbanFixture) task(t *testing.T, columnID, title string, creatorID *string) *domain.Task {
	t.Helper()
	task, err := f.tasks.CreateTask(context.Background(), CreateTaskInput{ColumnID: columnID, Title: title, CreatorID: creatorID})
	require.NoError(t, err)
	return task
}

func (f *kanbanFixture) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.database.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
