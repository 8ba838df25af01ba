package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/zentask/zentask/internal/server/store"
)

const (
	seedDefaultCount = 2000
	seedMaxCount     = 10000
)

// TodoHandler handles the todo CRUD and seed endpoints.
type TodoHandler struct {
	todos     store.TodoStore
	validator *validator.Validate
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todos store.TodoStore) *TodoHandler {
	return &TodoHandler{
		todos:     todos,
		validator: validator.New(),
	}
}

// List handles GET /api/todo/list. The full list is returned; there is
// no pagination.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	todos, err := h.todos.Todos(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list todos", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, TodoListResponse{Todos: todos})
}

// Get handles GET /api/todo/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := todoID(r)
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Todo not found")
		return
	}

	todo, err := h.todos.TodoByID(r.Context(), id, userID)
	if err != nil {
		h.respondTodoError(w, r, err, userID)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, todo)
}

// Create handles POST /api/todo. The server assigns the authoritative id.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTodoRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	todo := store.Todo{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
		Completed:   false,
		UserID:      userID,
	}
	if err := h.todos.CreateTodo(r.Context(), todo); err != nil {
		slog.Error("failed to create todo", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, todo)
}

// Update handles PUT /api/todo/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := todoID(r)
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Todo not found")
		return
	}

	var req UpdateTodoRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	update := store.TodoUpdate{Title: req.Title, Description: req.Description}
	if err := h.todos.UpdateTodo(r.Context(), id, userID, update); err != nil {
		h.respondTodoError(w, r, err, userID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/todo/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := todoID(r)
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Todo not found")
		return
	}

	if err := h.todos.DeleteTodo(r.Context(), id, userID); err != nil {
		h.respondTodoError(w, r, err, userID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Complete handles POST /api/todo/{id}/complete.
func (h *TodoHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, true)
}

// Incomplete handles POST /api/todo/{id}/incomplete.
func (h *TodoHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	h.setCompleted(w, r, false)
}

func (h *TodoHandler) setCompleted(w http.ResponseWriter, r *http.Request, completed bool) {
	userID, ok := GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := todoID(r)
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Todo not found")
		return
	}

	if err := h.todos.SetTodoCompleted(r.Context(), id, userID, completed); err != nil {
		h.respondTodoError(w, r, err, userID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Seed handles POST /api/todo/seed, generating mock todos for
// performance testing. Every third todo gets a description and every
// fourth starts completed.
func (h *TodoHandler) Seed(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	count := seedDefaultCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			count = parsed
		}
	}
	if count < 1 {
		count = 1
	}
	if count > seedMaxCount {
		count = seedMaxCount
	}

	now := time.Now().UTC()
	todos := make([]store.Todo, 0, count)
	for i := 0; i < count; i++ {
		todo := store.Todo{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("Mock task %d", i+1),
			CreatedAt: now,
			Completed: i%4 == 0,
			UserID:    userID,
		}
		if i%3 == 0 {
			todo.Description = fmt.Sprintf("Description for task %d", i+1)
		}
		todos = append(todos, todo)
	}

	if err := h.todos.InsertTodos(r.Context(), todos); err != nil {
		slog.Error("failed to seed todos", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, SeedResponse{Created: count})
}

func (h *TodoHandler) respondTodoError(w http.ResponseWriter, r *http.Request, err error, userID uuid.UUID) {
	if errors.Is(err, store.ErrTodoNotFound) {
		RespondWithError(w, r, http.StatusNotFound, "Todo not found")
		return
	}
	slog.Error("todo operation failed", "error", err, "user_id", userID)
	RespondWithError(w, r, http.StatusInternalServerError, "Internal Server Error")
}

func todoID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
