package api

import (
	"context"
	"fmt"
	"strings"
)

// Tasks returns the full task list for the authenticated user. The API
// returns the whole list per user; there is no pagination.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var response TaskListResponse
	if err := c.Get(ctx, "/api/todo/list", &response); err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	tasks := make([]Task, 0, len(response.Todos))
	for _, dto := range response.Todos {
		tasks = append(tasks, mapTodo(dto))
	}
	return tasks, nil
}

// Task returns a single task by ID.
func (c *Client) Task(ctx context.Context, id string) (*Task, error) {
	var dto TodoDto
	if err := c.Get(ctx, "/api/todo/"+pathEscape(id), &dto); err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	task := mapTodo(dto)
	return &task, nil
}

// CreateTask creates a new task. The server assigns the authoritative
// id; whitespace around the title and description is trimmed and an
// empty description is omitted from the payload.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	var dto TodoDto
	if err := c.Post(ctx, "/api/todo", req, &dto); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	task := mapTodo(dto)
	return &task, nil
}

// UpdateTask updates a task's title and/or description.
func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) error {
	if err := c.Put(ctx, "/api/todo/"+pathEscape(id), req); err != nil {
		return fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.Delete(ctx, "/api/todo/"+pathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

// SetCompleted marks a task completed or not completed.
func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) error {
	action := "incomplete"
	if completed {
		action = "complete"
	}
	if err := c.Post(ctx, "/api/todo/"+pathEscape(id)+"/"+action, nil, nil); err != nil {
		return fmt.Errorf("failed to mark task %s %s: %w", id, action, err)
	}
	return nil
}

// SeedTasks asks the server to generate count mock tasks for load
// testing and returns the number created. Count is clamped server-side
// to at most 10000.
func (c *Client) SeedTasks(ctx context.Context, count int) (int, error) {
	var response struct {
		Created int `json:"created"`
	}
	path := fmt.Sprintf("/api/todo/seed?count=%d", count)
	if err := c.Post(ctx, path, nil, &response); err != nil {
		return 0, fmt.Errorf("failed to seed tasks: %w", err)
	}
	return response.Created, nil
}
