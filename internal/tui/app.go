// Package tui provides the terminal user interface for Zentask.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zentask/zentask/internal/api"
	"github.com/zentask/zentask/internal/config"
	"github.com/zentask/zentask/internal/session"
	"github.com/zentask/zentask/internal/tui/components"
)

// View represents the current view/screen.
type View int

const (
	ViewLoading View = iota
	ViewAuth
	ViewTasks
	ViewTaskForm
	ViewConfirmDelete
	ViewHelp
)

// Pane represents which task pane is focused.
type Pane int

const (
	PaneTodo Pane = iota
	PaneDone
)

// App is the main Bubble Tea model for the application.
type App struct {
	// Dependencies
	client   *api.Client
	config   *config.Config
	sessions *session.Controller

	// View state
	currentView  View
	previousView View
	focusedPane  Pane

	// Data
	tasks []api.Task
	user  *api.User

	// UI state
	loading   bool
	statusMsg string
	errMsg    string
	width     int
	height    int

	// Components
	spinner  spinner.Model
	authForm *AuthForm
	taskForm *TaskForm
	todoList *components.TaskListModel
	doneList *components.TaskListModel

	// Delete confirmation state
	deleteTarget *api.Task
}

// NewApp creates a new App instance.
func NewApp(client *api.Client, sessions *session.Controller, cfg *config.Config) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot

	todoList := components.NewTaskList("To Do")
	todoList.SetVimMode(cfg.UI.VimMode)
	todoList.Focus()

	doneList := components.NewTaskList("Completed")
	doneList.SetVimMode(cfg.UI.VimMode)

	return &App{
		client:      client,
		config:      cfg,
		sessions:    sessions,
		currentView: ViewLoading,
		loading:     true,
		spinner:     s,
		authForm:    NewAuthForm(),
		todoList:    todoList,
		doneList:    doneList,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.bootstrapCmd())
}

// focusedList returns the task list of the focused pane.
func (a *App) focusedList() *components.TaskListModel {
	if a.focusedPane == PaneDone {
		return a.doneList
	}
	return a.todoList
}

// setTasks partitions the task list across the two panes, preserving
// creation order within each.
func (a *App) setTasks(tasks []api.Task) {
	a.tasks = tasks
	todo, done := api.Partition(tasks)
	a.todoList.SetTasks(todo)
	a.doneList.SetTasks(done)
}

// switchPane toggles focus between the two panes.
func (a *App) switchPane() {
	if a.focusedPane == PaneTodo {
		a.focusedPane = PaneDone
		a.todoList.Blur()
		a.doneList.Focus()
	} else {
		a.focusedPane = PaneTodo
		a.doneList.Blur()
		a.todoList.Focus()
	}
}

// layout recomputes component sizes from the window dimensions.
func (a *App) layout() {
	paneWidth := a.width/2 - 4
	paneHeight := a.height - 6
	if a.config.UI.ListHeight > 0 && a.config.UI.ListHeight < paneHeight {
		paneHeight = a.config.UI.ListHeight
	}
	if paneWidth < 20 {
		paneWidth = 20
	}
	if paneHeight < 5 {
		paneHeight = 5
	}
	a.todoList.SetSize(paneWidth, paneHeight)
	a.doneList.SetSize(paneWidth, paneHeight)
}
