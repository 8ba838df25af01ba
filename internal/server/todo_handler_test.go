package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zentask/zentask/internal/server/store"
)

func (e *testEnv) createTodo(t *testing.T, token, title, description string) store.Todo {
	t.Helper()
	body := map[string]string{"title": title}
	if description != "" {
		body["description"] = description
	}
	rec := e.request(t, http.MethodPost, "/api/todo", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var todo store.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	return todo
}

func (e *testEnv) listTodos(t *testing.T, token string) []store.Todo {
	t.Helper()
	rec := e.request(t, http.MethodGet, "/api/todo/list", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TodoListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Todos
}

func TestCreateAndListTodos(t *testing.T) {
	env := newTestEnv(t)
	pair := env.register(t, "cyuser", "TestPass123!")

	created := env.createTodo(t, pair.AccessToken, "Buy milk", "2% if they have it")
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "2% if they have it", created.Description)
	assert.False(t, created.Completed)
	assert.NotEqual(t, uuid.Nil, created.ID)

	env.createTodo(t, pair.AccessToken, "Call mom", "")

	todos := env.listTodos(t, pair.AccessToken)
	require.Len(t, todos, 2)
	assert.Equal(t, "Buy milk", todos[0].Title)
	assert.Equal(t, "Call mom", todos[1].Title)
}

func TestCreateTodoValidation(t *testing.T) {
	env := newTestEnv(t)
	pair := env.register(t, "cyuser", "TestPass123!")

	rec := env.request(t, http.MethodPost, "/api/todo", pair.AccessToken, map[string]string{
		"title": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUpdateDeleteTodo(t *testing.T) {
	env := newTestEnv(t)
	pair := env.register(t, "cyuser", "TestPass123!")
	todo := env.createTodo(t, pair.AccessToken, "Buy milk", "")

	path := "/api/todo/" + todo.ID.String()

	rec := env.request(t, http.MethodGet, path, pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodPut, path, pair.AccessToken, map[string]string{
		"title": "Buy oat milk",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodGet, path, pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated store.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Buy oat milk", updated.Title)

	rec = env.request(t, http.MethodDelete, path, pair.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodGet, path, pair.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Todo not found", errorMessage(t, rec))
}

func TestTodoNotFoundResponses(t *testing.T) {
	env := newTestEnv(t)
	pair := env.register(t, "cyuser", "TestPass123!")

	// A valid but unknown uuid and a malformed id both read as missing.
	rec := env.request(t, http.MethodGet, "/api/todo/"+uuid.NewString(), pair.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/todo/not-a-uuid", pair.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTodosAreIsolatedPerUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "TestPass123!")
	bob := env.register(t, "bob", "TestPass123!")

	todo := env.createTodo(t, alice.AccessToken, "Alice's task", "")

	assert.Empty(t, env.listTodos(t, bob.AccessToken))

	rec := env.request(t, http.MethodGet, "/api/todo/"+todo.ID.String(), bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodDelete, "/api/todo/"+todo.ID.String(), bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Len(t, env.listTodos(t, alice.AccessToken), 1)
}

func TestCompleteAndIncomplete(t *testing.T) {
	env := newTestEnv(t)
	pair := env.register(t, "cyuser", "TestPass123!")
	todo := env.createTodo(t, pair.AccessToken, "Buy milk", "")

	rec := env.request(t, http.MethodPost, "/api/todo/"+todo.ID.String()+"/complete", pair.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	todos := env.listTodos(t, pair.AccessToken)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Completed)

	rec = env.request(t, http.MethodPost, "/api/todo/"+todo.ID.String()+"/incomplete", pair.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	todos = env.listTodos(t, pair.AccessToken)
	assert.False(t, todos[0].Completed)
}

func TestSeedGeneratesMockTodos(t *testing.T) {
	env := newTestEnv(t)
	pair := env.register(t, "cyuser", "TestPass123!")

	rec := env.request(t, http.MethodPost, "/api/todo/seed?count=12", pair.AccessToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp SeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Created)

	todos := env.listTodos(t, pair.AccessToken)
	require.Len(t, todos, 12)

	for i, todo := range todos {
		assert.Equal(t, fmt.Sprintf("Mock task %d", i+1), todo.Title)
		if i%3 == 0 {
			assert.Equal(t, fmt.Sprintf("Description for task %d", i+1), todo.Description)
		} else {
			assert.Empty(t, todo.Description)
		}
		assert.Equal(t, i%4 == 0, todo.Completed)
	}
}

func TestSeedClampsCount(t *testing.T) {
	env := newTestEnv(t)
	pair := env.register(t, "cyuser", "TestPass123!")

	rec := env.request(t, http.MethodPost, "/api/todo/seed?count=0", pair.AccessToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp SeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Created)

	rec = env.request(t, http.MethodPost, "/api/todo/seed?count=notanumber", pair.AccessToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2000, resp.Created)
}
