// Package api provides a client for the Zentask REST API.
package api

// TokenPair holds the opaque bearer tokens returned by the login,
// register, and refresh endpoints. Tokens are never decoded client-side.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenStore persists a token pair across application runs.
// Implementations must make every write immediately visible to
// subsequent readers and must clear both tokens together, never
// independently.
type TokenStore interface {
	// Access returns the stored access token, or "" if absent.
	Access() string

	// Refresh returns the stored refresh token, or "" if absent.
	Refresh() string

	// Store persists both tokens of the pair.
	Store(pair TokenPair) error

	// Clear removes both tokens.
	Clear() error
}

// User is the identity returned by the "who am I" endpoint.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

// Credentials is the payload for the login and register endpoints.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Task is the client-side view of a todo. Description is "" when the
// server omits it; the owning user id is dropped during mapping.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   string
}

// TodoDto is the backend todo shape.
type TodoDto struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	Completed   bool    `json:"completed"`
	UserID      string  `json:"userId"`
}

// TaskListResponse is the body of GET /api/todo/list.
type TaskListResponse struct {
	Todos []TodoDto `json:"todos"`
}

// CreateTaskRequest is the body of POST /api/todo.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UpdateTaskRequest is the body of PUT /api/todo/:id.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// mapTodo converts a backend todo into a Task.
func mapTodo(dto TodoDto) Task {
	description := ""
	if dto.Description != nil {
		description = *dto.Description
	}
	return Task{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: description,
		Completed:   dto.Completed,
		CreatedAt:   dto.CreatedAt,
	}
}

// Partition splits tasks into the to-do and completed halves. The two
// slices are disjoint and together cover the input.
func Partition(tasks []Task) (todo, completed []Task) {
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			todo = append(todo, t)
		}
	}
	return todo, completed
}
