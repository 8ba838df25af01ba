package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// FileStore implements UserStore and TodoStore on top of a single JSON
// document. Path == "" keeps the dataset in memory only, which the
// tests and the seedable dev server use.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	users map[uuid.UUID]User
	todos map[uuid.UUID]Todo

	// todoOrder preserves creation order per user for stable listings.
	todoOrder []uuid.UUID
}

var (
	_ UserStore = (*FileStore)(nil)
	_ TodoStore = (*FileStore)(nil)
)

// document is the on-disk shape.
type document struct {
	Users []User `json:"users"`
	Todos []Todo `json:"todos"`
}

// Open loads the store from path, creating an empty one if the file
// does not exist yet.
func Open(path string) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		users: make(map[uuid.UUID]User),
		todos: make(map[uuid.UUID]Todo),
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	for _, u := range doc.Users {
		s.users[u.ID] = u
	}
	for _, t := range doc.Todos {
		s.todos[t.ID] = t
		s.todoOrder = append(s.todoOrder, t.ID)
	}
	return s, nil
}

// persistLocked writes the dataset to disk. The caller must hold the
// write lock. Writes go through a temp file and rename so a crash never
// leaves a half-written document.
func (s *FileStore) persistLocked() error {
	if s.path == "" {
		return nil
	}

	doc := document{
		Users: make([]User, 0, len(s.users)),
		Todos: make([]Todo, 0, len(s.todoOrder)),
	}
	for _, u := range s.users {
		doc.Users = append(doc.Users, u)
	}
	sort.Slice(doc.Users, func(i, j int) bool {
		return doc.Users[i].CreatedAt.Before(doc.Users[j].CreatedAt)
	})
	for _, id := range s.todoOrder {
		if t, ok := s.todos[id]; ok {
			doc.Todos = append(doc.Todos, t)
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

// CreateUser saves a new user. Usernames are unique case-insensitively.
func (s *FileStore) CreateUser(ctx context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return ErrUsernameExists
		}
	}
	s.users[user.ID] = user
	return s.persistLocked()
}

// UserByName retrieves a user by username.
func (s *FileStore) UserByName(ctx context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

// UserByID retrieves a user by id.
func (s *FileStore) UserByID(ctx context.Context, id uuid.UUID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

// Todos returns the user's todos in creation order.
func (s *FileStore) Todos(ctx context.Context, userID uuid.UUID) ([]Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]Todo, 0)
	for _, id := range s.todoOrder {
		if t, ok := s.todos[id]; ok && t.UserID == userID {
			todos = append(todos, t)
		}
	}
	return todos, nil
}

// TodoByID retrieves one todo scoped to its owner.
func (s *FileStore) TodoByID(ctx context.Context, id, userID uuid.UUID) (Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return Todo{}, ErrTodoNotFound
	}
	return t, nil
}

// CreateTodo saves a new todo.
func (s *FileStore) CreateTodo(ctx context.Context, todo Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos[todo.ID] = todo
	s.todoOrder = append(s.todoOrder, todo.ID)
	return s.persistLocked()
}

// InsertTodos saves a batch of todos in one write.
func (s *FileStore) InsertTodos(ctx context.Context, todos []Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range todos {
		s.todos[t.ID] = t
		s.todoOrder = append(s.todoOrder, t.ID)
	}
	return s.persistLocked()
}

// UpdateTodo applies the non-nil fields of update.
func (s *FileStore) UpdateTodo(ctx context.Context, id, userID uuid.UUID, update TodoUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return ErrTodoNotFound
	}
	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	s.todos[id] = t
	return s.persistLocked()
}

// SetTodoCompleted flips the completion flag.
func (s *FileStore) SetTodoCompleted(ctx context.Context, id, userID uuid.UUID, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return ErrTodoNotFound
	}
	t.Completed = completed
	s.todos[id] = t
	return s.persistLocked()
}

// DeleteTodo removes a todo permanently.
func (s *FileStore) DeleteTodo(ctx context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return ErrTodoNotFound
	}
	delete(s.todos, id)
	for i, oid := range s.todoOrder {
		if oid == id {
			s.todoOrder = append(s.todoOrder[:i], s.todoOrder[i+1:]...)
			break
		}
	}
	return s.persistLocked()
}
