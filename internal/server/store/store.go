// Package store defines the persistence interfaces for zentaskd and a
// file-backed implementation. The backend keeps its whole dataset in a
// single JSON document on disk, mirroring an embedded document store;
// all access is serialized through one lock.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUsernameExists is returned when registering a username that is
	// already taken.
	ErrUsernameExists = errors.New("username already exists")

	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")

	// ErrTodoNotFound is returned when a todo lookup misses or the todo
	// belongs to another user.
	ErrTodoNotFound = errors.New("todo not found")
)

// User is a registered account. HashedPassword is a bcrypt hash; the
// plaintext never reaches the store.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashedPassword"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Todo is a stored task owned by a single user.
type Todo struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Completed   bool      `json:"completed"`
	UserID      uuid.UUID `json:"userId"`
}

// TodoUpdate carries the mutable fields of a todo; nil means unchanged.
type TodoUpdate struct {
	Title       *string
	Description *string
}

// UserStore defines user persistence.
type UserStore interface {
	// CreateUser saves a new user. Returns ErrUsernameExists if the
	// username is already taken.
	CreateUser(ctx context.Context, user User) error

	// UserByName retrieves a user by username. Returns ErrUserNotFound
	// if the user does not exist.
	UserByName(ctx context.Context, username string) (User, error)

	// UserByID retrieves a user by id. Returns ErrUserNotFound if the
	// user does not exist.
	UserByID(ctx context.Context, id uuid.UUID) (User, error)
}

// TodoStore defines todo persistence. Every operation is scoped to the
// owning user; a todo belonging to someone else behaves as absent.
type TodoStore interface {
	// Todos returns the user's todos in creation order.
	Todos(ctx context.Context, userID uuid.UUID) ([]Todo, error)

	// TodoByID retrieves one todo. Returns ErrTodoNotFound if absent.
	TodoByID(ctx context.Context, id, userID uuid.UUID) (Todo, error)

	// CreateTodo saves a new todo.
	CreateTodo(ctx context.Context, todo Todo) error

	// InsertTodos saves a batch of todos in one write (seeding).
	InsertTodos(ctx context.Context, todos []Todo) error

	// UpdateTodo applies the non-nil fields of update.
	UpdateTodo(ctx context.Context, id, userID uuid.UUID, update TodoUpdate) error

	// SetTodoCompleted flips the completion flag.
	SetTodoCompleted(ctx context.Context, id, userID uuid.UUID, completed bool) error

	// DeleteTodo removes a todo permanently.
	DeleteTodo(ctx context.Context, id, userID uuid.UUID) error
}
