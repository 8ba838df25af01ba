package server

import (
	"time"

	"github.com/google/uuid"

	"github.com/zentask/zentask/internal/server/store"
)

// RegisterRequest defines the payload for the registration endpoint.
// PasswordConfirm is optional; when present it must match Password.
type RegisterRequest struct {
	Username        string `json:"username"                  validate:"required,min=3,max=32"`
	Password        string `json:"password"                  validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"passwordConfirm,omitempty" validate:"omitempty,eqfield=Password"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenPairResponse is the successful response of register and login.
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccessTokenResponse is the successful response of the refresh endpoint.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// UserResponse is the identity returned by /api/user/me.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateTodoRequest defines the payload for creating a todo.
type CreateTodoRequest struct {
	Title       string `json:"title"                 validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
}

// UpdateTodoRequest defines the payload for updating a todo. Absent
// fields are left unchanged.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// TodoListResponse is the body of GET /api/todo/list.
type TodoListResponse struct {
	Todos []store.Todo `json:"todos"`
}

// SeedResponse reports how many mock todos were created.
type SeedResponse struct {
	Created int `json:"created"`
}
