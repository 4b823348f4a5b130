package mockapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/todo/internal/db"
	"github.com/alexanderramin/todo/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// repoFactories runs each router test against both repository backends.
func repoFactories(t *testing.T) map[string]func() Repository {
	t.Helper()
	return map[string]func() Repository{
		"memory": func() Repository { return NewMemoryRepo() },
		"sqlite": func() Repository {
			database, err := db.OpenDB(db.MemoryPath)
			require.NoError(t, err)
			t.Cleanup(func() { database.Close() })
			return NewSQLiteRepo(database)
		},
	}
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeTodo(t *testing.T, rr *httptest.ResponseRecorder) domain.Todo {
	t.Helper()
	var got domain.Todo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	return got
}

func TestRouter_Lifecycle(t *testing.T) {
	for name, newRepo := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			r := NewRouter(newRepo(), nil)

			rr := serve(t, r, http.MethodGet, "/todo", "")
			require.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `[]`, rr.Body.String())

			rr = serve(t, r, http.MethodPost, "/todo",
				`{"Title":"buy milk","date_added":"2024-01-01","date_completed":""}`)
			require.Equal(t, http.StatusCreated, rr.Code)
			created := decodeTodo(t, rr)
			assert.Equal(t, domain.ID("1"), created.ID)
			assert.Equal(t, "buy milk", created.Title)
			assert.False(t, created.Completed())

			rr = serve(t, r, http.MethodPut, "/todo/1", `{"Title":"buy oat milk"}`)
			require.Equal(t, http.StatusOK, rr.Code)
			updated := decodeTodo(t, rr)
			assert.Equal(t, "buy oat milk", updated.Title)
			assert.Equal(t, "2024-01-01", updated.DateAdded)

			rr = serve(t, r, http.MethodPut, "/todo/1", `{"date_completed":"2024-01-05"}`)
			require.Equal(t, http.StatusOK, rr.Code)
			completed := decodeTodo(t, rr)
			assert.Equal(t, "buy oat milk", completed.Title)
			assert.Equal(t, "2024-01-05", completed.DateCompleted)

			rr = serve(t, r, http.MethodGet, "/todo/1", "")
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, completed, decodeTodo(t, rr))

			rr = serve(t, r, http.MethodDelete, "/todo/1", "")
			require.Equal(t, http.StatusOK, rr.Code)

			rr = serve(t, r, http.MethodGet, "/todo", "")
			assert.JSONEq(t, `[]`, rr.Body.String())
		})
	}
}

func TestRouter_EmptyPatchLeavesRecord(t *testing.T) {
	for name, newRepo := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			r := NewRouter(newRepo(), nil)
			rr := serve(t, r, http.MethodPost, "/todo",
				`{"Title":"buy milk","date_added":"2024-01-01","date_completed":""}`)
			require.Equal(t, http.StatusCreated, rr.Code)
			created := decodeTodo(t, rr)

			rr = serve(t, r, http.MethodPut, "/todo/1", `{}`)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, created, decodeTodo(t, rr))

			assert.Equal(t, http.StatusNotFound, serve(t, r, http.MethodPut, "/todo/9", `{}`).Code)
		})
	}
}

func TestRouter_NotFound(t *testing.T) {
	for name, newRepo := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			r := NewRouter(newRepo(), nil)

			assert.Equal(t, http.StatusNotFound, serve(t, r, http.MethodGet, "/todo/9", "").Code)
			assert.Equal(t, http.StatusNotFound, serve(t, r, http.MethodPut, "/todo/9", `{"Title":"x"}`).Code)
			assert.Equal(t, http.StatusNotFound, serve(t, r, http.MethodDelete, "/todo/9", "").Code)
			assert.Equal(t, http.StatusNotFound, serve(t, r, http.MethodDelete, "/todo/abc", "").Code)
		})
	}
}

func TestRouter_InvalidJSON(t *testing.T) {
	r := NewRouter(NewMemoryRepo(), nil)

	rr := serve(t, r, http.MethodPost, "/todo", `{"Title":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_KeepsInsertionOrder(t *testing.T) {
	for name, newRepo := range repoFactories(t) {
		t.Run(name, func(t *testing.T) {
			r := NewRouter(newRepo(), nil)
			for _, title := range []string{"a", "b", "c"} {
				rr := serve(t, r, http.MethodPost, "/todo", `{"Title":"`+title+`","date_added":"2024-01-01","date_completed":""}`)
				require.Equal(t, http.StatusCreated, rr.Code)
			}

			rr := serve(t, r, http.MethodGet, "/todo", "")
			var todos []domain.Todo
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &todos))
			require.Len(t, todos, 3)
			assert.Equal(t, "a", todos[0].Title)
			assert.Equal(t, "c", todos[2].Title)
		})
	}
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	r := NewRouter(NewMemoryRepo(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))

	rr = serve(t, r, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))
}

func TestMemoryRepo_SeedContinuesIDs(t *testing.T) {
	repo := NewMemoryRepo(domain.Todo{ID: "5", Title: "seeded"})

	created, err := repo.Create(t.Context(), domain.NewTodo{Title: "next"})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("6"), created.ID)
}
