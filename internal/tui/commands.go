package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zentask/zentask/internal/api"
	"github.com/zentask/zentask/internal/session"
)

// RouteChangedMsg is sent when the session controller requests
// navigation, including from outside the Bubble Tea loop.
type RouteChangedMsg struct {
	Route session.Route
}

// ForcedLogoutMsg is sent when the API client's unauthorized signal
// fires after an unrecoverable 401.
type ForcedLogoutMsg struct{}

type sessionMsg struct {
	snapshot session.Snapshot
}

type authResultMsg struct {
	snapshot session.Snapshot
	err      error
}

type tasksLoadedMsg struct {
	tasks []api.Task
}

type taskMutatedMsg struct {
	status string
}

type seedDoneMsg struct {
	created int
}

type errMsg struct {
	err error
}

type statusMsg struct {
	msg string
}

// bootstrapCmd resolves the initial session state from stored tokens.
func (a *App) bootstrapCmd() tea.Cmd {
	return func() tea.Msg {
		a.sessions.Bootstrap(context.Background())
		return sessionMsg{snapshot: a.sessions.Snapshot()}
	}
}

func (a *App) loginCmd(creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		err := a.sessions.Login(context.Background(), creds)
		return authResultMsg{snapshot: a.sessions.Snapshot(), err: err}
	}
}

func (a *App) registerCmd(creds api.Credentials) tea.Cmd {
	return func() tea.Msg {
		err := a.sessions.Register(context.Background(), creds)
		return authResultMsg{snapshot: a.sessions.Snapshot(), err: err}
	}
}

func (a *App) loadTasksCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := a.client.Tasks(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (a *App) createTaskCmd(req api.CreateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.client.CreateTask(context.Background(), req); err != nil {
			return errMsg{err: err}
		}
		return taskMutatedMsg{status: "Task created"}
	}
}

func (a *App) updateTaskCmd(id string, req api.UpdateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		if err := a.client.UpdateTask(context.Background(), id, req); err != nil {
			return errMsg{err: err}
		}
		return taskMutatedMsg{status: "Task updated"}
	}
}

func (a *App) deleteTaskCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.client.DeleteTask(context.Background(), id); err != nil {
			return errMsg{err: err}
		}
		return taskMutatedMsg{status: "Task deleted"}
	}
}

func (a *App) toggleTaskCmd(id string, completed bool) tea.Cmd {
	return func() tea.Msg {
		if err := a.client.SetCompleted(context.Background(), id, completed); err != nil {
			return errMsg{err: err}
		}
		status := "Task reopened"
		if completed {
			status = "Task completed"
		}
		return taskMutatedMsg{status: status}
	}
}

func (a *App) seedTasksCmd(count int) tea.Cmd {
	return func() tea.Msg {
		created, err := a.client.SeedTasks(context.Background(), count)
		if err != nil {
			return errMsg{err: err}
		}
		return seedDoneMsg{created: created}
	}
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		a.sessions.Logout()
		return sessionMsg{snapshot: a.sessions.Snapshot()}
	}
}

func statusCmd(format string, args ...interface{}) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{msg: fmt.Sprintf(format, args...)}
	}
}
