package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(name string) User {
	return User{
		ID:             uuid.New(),
		Username:       name,
		HashedPassword: "hashed",
		CreatedAt:      time.Now().UTC(),
	}
}

func newTodo(userID uuid.UUID, title string) Todo {
	return Todo{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
		UserID:    userID,
	}
}

func TestCreateUserRejectsDuplicateUsernameCaseInsensitive(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newUser("alice")))
	err = s.CreateUser(ctx, newUser("ALICE"))
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserLookups(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	ctx := context.Background()

	user := newUser("alice")
	require.NoError(t, s.CreateUser(ctx, user))

	byName, err := s.UserByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byID, err := s.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = s.UserByName(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTodosAreOwnerScopedAndOrdered(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	first := newTodo(alice, "first")
	second := newTodo(alice, "second")
	other := newTodo(bob, "not yours")

	require.NoError(t, s.CreateTodo(ctx, first))
	require.NoError(t, s.CreateTodo(ctx, other))
	require.NoError(t, s.CreateTodo(ctx, second))

	todos, err := s.Todos(ctx, alice)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "first", todos[0].Title)
	assert.Equal(t, "second", todos[1].Title)

	// A todo owned by someone else is invisible, not forbidden.
	_, err = s.TodoByID(ctx, other.ID, alice)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestUpdateTodoAppliesOnlyProvidedFields(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	ctx := context.Background()

	userID := uuid.New()
	todo := newTodo(userID, "original")
	todo.Description = "keep me"
	require.NoError(t, s.CreateTodo(ctx, todo))

	title := "renamed"
	require.NoError(t, s.UpdateTodo(ctx, todo.ID, userID, TodoUpdate{Title: &title}))

	got, err := s.TodoByID(ctx, todo.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "keep me", got.Description)
}

func TestSetTodoCompletedAndDelete(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	ctx := context.Background()

	userID := uuid.New()
	todo := newTodo(userID, "task")
	require.NoError(t, s.CreateTodo(ctx, todo))

	require.NoError(t, s.SetTodoCompleted(ctx, todo.ID, userID, true))
	got, err := s.TodoByID(ctx, todo.ID, userID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	require.NoError(t, s.DeleteTodo(ctx, todo.ID, userID))
	_, err = s.TodoByID(ctx, todo.ID, userID)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	err = s.DeleteTodo(ctx, todo.ID, userID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestInsertTodosBatch(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	ctx := context.Background()

	userID := uuid.New()
	batch := []Todo{newTodo(userID, "a"), newTodo(userID, "b"), newTodo(userID, "c")}
	require.NoError(t, s.InsertTodos(ctx, batch))

	todos, err := s.Todos(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, todos, 3)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)

	user := newUser("alice")
	require.NoError(t, s.CreateUser(ctx, user))
	todo := newTodo(user.ID, "survives restart")
	todo.Completed = true
	require.NoError(t, s.CreateTodo(ctx, todo))

	reopened, err := Open(path)
	require.NoError(t, err)

	gotUser, err := reopened.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", gotUser.Username)

	todos, err := reopened.Todos(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "survives restart", todos[0].Title)
	assert.True(t, todos[0].Completed)
}
