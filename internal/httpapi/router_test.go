package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/kanban/internal/db"
	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/imagestore"
	"github.com/alexanderramin/kanban/internal/repository"
	"github.com/alexanderramin/kanban/internal/service"
	"github.com/alexanderramin/kanban/internal/testutil"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR-kanban-test")

type apiFixture struct {
	router http.Handler
	hook   *test.Hook
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	conn := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(conn)
	images := imagestore.NewSQLiteStore(conn)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	h := &Handlers{
		Boards:  service.NewBoardService(repository.NewSQLiteBoardRepo(conn), uow, nil),
		Columns: service.NewColumnService(repository.NewSQLiteColumnRepo(conn), uow, nil),
		Tasks:   service.NewTaskService(repository.NewSQLiteTaskRepo(conn), uow, images, nil),
		Users:   service.NewUserService(repository.NewSQLiteUserRepo(conn), uow, nil),
		Images:  images,
		Logger:  logger,
	}
	return &apiFixture{router: NewRouter(h, nil), hook: hook}
}

func (f *apiFixture) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		payload, err := sonic.Marshal(b)
		require.NoError(t, err)
		buf.Write(payload)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (f *apiFixture) createUser(t *testing.T, name string) userResponse {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/users", "", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[userResponse](t, rec)
}

func (f *apiFixture) createBoard(t *testing.T, owner, name string) boardResponse {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/boards", owner, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[boardResponse](t, rec)
}

func (f *apiFixture) createColumn(t *testing.T, boardID, name string) columnResponse {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/columns", "", map[string]any{"boardId": boardID, "name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[columnResponse](t, rec)
}

func (f *apiFixture) createTask(t *testing.T, user, columnID, title string, extra map[string]any) taskResponse {
	t.Helper()
	body := map[string]any{"columnId": columnID, "title": title}
	for k, v := range extra {
		body[k] = v
	}
	rec := f.do(t, http.MethodPost, "/api/tasks", user, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[taskResponse](t, rec)
}

func TestHealthz(t *testing.T) {
	f := newAPIFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthz_DependencyDown(t *testing.T) {
	h := &Handlers{Health: func(context.Context) error { return errors.New("db closed") }}
	logger, _ := test.NewNullLogger()
	h.Logger = logger

	rec := httptest.NewRecorder()
	NewRouter(h, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBoards_CreateListGetUpdateDelete(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.createUser(t, "Alice")

	board := f.createBoard(t, owner.ID, "Roadmap")
	assert.Equal(t, owner.ID, board.OwnerID)
	assert.Nil(t, board.Description)

	rec := f.do(t, http.MethodGet, "/api/boards", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]boardResponse](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, board.ID, list[0].ID)

	rec = f.do(t, http.MethodPut, "/api/boards/"+board.ID, "", map[string]any{"description": "Q3 goals"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[boardResponse](t, rec)
	assert.Equal(t, "Roadmap", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Q3 goals", *updated.Description)

	rec = f.do(t, http.MethodGet, "/api/boards/"+board.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[domain.BoardView](t, rec)
	assert.Equal(t, board.ID, view.ID)
	assert.Empty(t, view.Columns)

	rec = f.do(t, http.MethodDelete, "/api/boards/"+board.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/boards/"+board.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBoard_OwnerFromBodyWhenNoHeader(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.createUser(t, "Bob")

	rec := f.do(t, http.MethodPost, "/api/boards", "", map[string]any{"name": "Ops", "userId": owner.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, owner.ID, decode[boardResponse](t, rec).OwnerID)
}

func TestCreateBoard_Errors(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.createUser(t, "Carol")

	tests := []struct {
		name   string
		user   string
		body   any
		status int
		code   string
	}{
		{"no owner", "", map[string]any{"name": "X"}, http.StatusBadRequest, "validation"},
		{"blank name", owner.ID, map[string]any{"name": "  "}, http.StatusBadRequest, "validation"},
		{"unknown owner", "ghost", map[string]any{"name": "X"}, http.StatusNotFound, "not_found"},
		{"malformed json", owner.ID, `{"name":`, http.StatusBadRequest, "validation"},
		{"empty body", owner.ID, nil, http.StatusBadRequest, "validation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/api/boards", tt.user, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			env := decode[errorEnvelope](t, rec)
			assert.Equal(t, tt.code, env.Code)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestBoardDetail_OrderedColumnsAndTasks(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.createUser(t, "Dana")
	board := f.createBoard(t, owner.ID, "Sprint")

	todo := f.createColumn(t, board.ID, "Todo")
	done := f.createColumn(t, board.ID, "Done")
	assert.Equal(t, 0, todo.Order)
	assert.Equal(t, 1, done.Order)

	t1 := f.createTask(t, owner.ID, todo.ID, "first", nil)
	t2 := f.createTask(t, owner.ID, todo.ID, "second", nil)
	assert.Equal(t, 0, t1.Order)
	assert.Equal(t, 1, t2.Order)
	require.NotNil(t, t1.CreatorID)
	assert.Equal(t, owner.ID, *t1.CreatorID)

	// Put Done in front.
	rec := f.do(t, http.MethodPut, "/api/columns/"+done.ID, "", map[string]any{"order": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = f.do(t, http.MethodPut, "/api/columns/"+todo.ID, "", map[string]any{"order": 5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/boards/"+board.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[domain.BoardView](t, rec)
	require.Len(t, view.Columns, 2)
	assert.Equal(t, "Done", view.Columns[0].Name)
	assert.Equal(t, "Todo", view.Columns[1].Name)
	assert.Empty(t, view.Columns[0].Tasks)
	require.Len(t, view.Columns[1].Tasks, 2)
	assert.Equal(t, "first", view.Columns[1].Tasks[0].Title)
	require.NotNil(t, view.Columns[1].Tasks[0].CreatorName)
	assert.Equal(t, "Dana", *view.Columns[1].Tasks[0].CreatorName)
}

func TestCreateColumn_UnknownBoard(t *testing.T) {
	f := newAPIFixture(t)
	rec := f.do(t, http.MethodPost, "/api/columns", "", map[string]any{"boardId": "missing", "name": "Todo"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decode[errorEnvelope](t, rec).Code)
}

func TestMoveTask(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.createUser(t, "Eve")
	board := f.createBoard(t, owner.ID, "Flow")
	c1 := f.createColumn(t, board.ID, "C1")
	c2 := f.createColumn(t, board.ID, "C2")

	f.createTask(t, "", c1.ID, "a", nil)
	f.createTask(t, "", c1.ID, "b", nil)
	moving := f.createTask(t, "", c1.ID, "c", nil)
	f.createTask(t, "", c2.ID, "x", nil)
	f.createTask(t, "", c2.ID, "y", nil)
	require.Equal(t, 2, moving.Order)

	rec := f.do(t, http.MethodPost, "/api/tasks/"+moving.ID+"/move", "", map[string]any{"columnId": c2.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	moved := decode[taskResponse](t, rec)
	assert.Equal(t, c2.ID, moved.ColumnID)
	assert.Equal(t, 2, moved.Order)

	rec = f.do(t, http.MethodPost, "/api/tasks/"+moving.ID+"/move", "", map[string]any{"columnId": "nowhere"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/tasks/missing/move", "", map[string]any{"columnId": c1.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskImage_CreateKeepRemoveReplace(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.createUser(t, "Finn")
	board := f.createBoard(t, owner.ID, "Design")
	col := f.createColumn(t, board.ID, "Mockups")

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	task := f.createTask(t, owner.ID, col.ID, "logo", map[string]any{"image": dataURL})
	require.NotNil(t, task.ImageRef)
	assert.Equal(t, imagestore.Ref(pngBytes), *task.ImageRef)

	rec := f.do(t, http.MethodGet, "/api/images/"+*task.ImageRef, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngBytes, rec.Body.Bytes())

	// Absent image keeps the reference.
	rec = f.do(t, http.MethodPut, "/api/tasks/"+task.ID, "", map[string]any{"title": "logo v2"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	kept := decode[taskResponse](t, rec)
	assert.Equal(t, "logo v2", kept.Title)
	require.NotNil(t, kept.ImageRef)
	assert.Equal(t, *task.ImageRef, *kept.ImageRef)

	// Null removes it.
	rec = f.do(t, http.MethodPut, "/api/tasks/"+task.ID, "", `{"image":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decode[taskResponse](t, rec).ImageRef)

	// Plain base64 replaces it.
	other := append([]byte{}, pngBytes...)
	other = append(other, "-v3"...)
	rec = f.do(t, http.MethodPut, "/api/tasks/"+task.ID, "", map[string]any{
		"image": base64.StdEncoding.EncodeToString(other),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	replaced := decode[taskResponse](t, rec)
	require.NotNil(t, replaced.ImageRef)
	assert.Equal(t, imagestore.Ref(other), *replaced.ImageRef)
}

func TestTaskImage_Rejected(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.createUser(t, "Gus")
	board := f.createBoard(t, owner.ID, "B")
	col := f.createColumn(t, board.ID, "C")

	tests := []struct {
		name  string
		image any
	}{
		{"not base64", "%%%"},
		{"not an image", base64.StdEncoding.EncodeToString([]byte("plain text"))},
		{"data url without base64", "data:image/png,abc"},
		{"number", 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := f.createTask(t, "", col.ID, "t-"+tt.name, nil)
			rec := f.do(t, http.MethodPut, "/api/tasks/"+task.ID, "", map[string]any{"image": tt.image})
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestGetImage_Errors(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/images/not-a-ref", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/images/"+imagestore.Ref([]byte("never stored")), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTaskAndColumn(t *testing.T) {
	f := newAPIFixture(t)
	owner := f.createUser(t, "Hana")
	board := f.createBoard(t, owner.ID, "B")
	col := f.createColumn(t, board.ID, "C")
	task := f.createTask(t, "", col.ID, "t", nil)

	rec := f.do(t, http.MethodDelete, "/api/tasks/"+task.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodDelete, "/api/tasks/"+task.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/columns/"+col.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/boards/"+board.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[domain.BoardView](t, rec).Columns)
}

func TestDeleteUser_ReassignAndConflict(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.createUser(t, "Alice")
	bob := f.createUser(t, "Bob")
	board := f.createBoard(t, alice.ID, "Owned")

	rec := f.do(t, http.MethodDelete, "/api/users/"+alice.ID, "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decode[errorEnvelope](t, rec).Code)

	rec = f.do(t, http.MethodDelete, "/api/users/"+alice.ID+"?reassignTo="+bob.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/boards/"+board.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bob.ID, decode[domain.BoardView](t, rec).OwnerID)

	rec = f.do(t, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]userResponse](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, bob.ID, users[0].ID)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	f := newAPIFixture(t)
	body := map[string]any{"name": "Ivy", "email": "ivy@example.com"}

	rec := f.do(t, http.MethodPost, "/api/users", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = f.do(t, http.MethodPost, "/api/users", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	f := newAPIFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/boards", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", UserHeader)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogging(t *testing.T) {
	f := newAPIFixture(t)
	f.do(t, http.MethodGet, "/api/boards", "", nil)

	var found bool
	for _, e := range f.hook.AllEntries() {
		if e.Message == "http request" {
			found = true
			assert.Equal(t, http.MethodGet, e.Data["method"])
			assert.Equal(t, http.StatusOK, e.Data["status"])
		}
	}
	assert.True(t, found, "expected a request log entry")
}
