package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zentask/zentask/internal/session"
	"github.com/zentask/zentask/internal/tui/components"
)

// seedCount is the number of mock tasks requested by the seed key.
const seedCount = 2000

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case sessionMsg:
		return a.applySession(msg.snapshot)

	case authResultMsg:
		if msg.err != nil {
			a.errMsg = msg.snapshot.AuthError
			return a, nil
		}
		return a.applySession(msg.snapshot)

	case RouteChangedMsg:
		if msg.Route == session.RouteLogin {
			a.showAuth()
		}
		return a, nil

	case ForcedLogoutMsg:
		a.showAuth()
		a.errMsg = "Session expired, please log in again"
		return a, nil

	case tasksLoadedMsg:
		a.loading = false
		a.setTasks(msg.tasks)
		return a, nil

	case taskMutatedMsg:
		a.statusMsg = msg.status
		return a, a.loadTasksCmd()

	case seedDoneMsg:
		return a, tea.Batch(a.loadTasksCmd(), statusCmd("Seeded %d tasks", msg.created))

	case statusMsg:
		a.statusMsg = msg.msg
		return a, nil

	case errMsg:
		a.loading = false
		a.errMsg = msg.err.Error()
		return a, nil

	case components.TaskSelectedMsg:
		// Enter toggles completion in either pane.
		return a, a.toggleTaskCmd(msg.Task.ID, !msg.Task.Completed)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

// applySession routes the UI based on the session snapshot.
func (a *App) applySession(snapshot session.Snapshot) (tea.Model, tea.Cmd) {
	a.user = snapshot.User
	if snapshot.Loading {
		a.currentView = ViewLoading
		return a, nil
	}
	if !snapshot.Authenticated() {
		a.showAuth()
		a.errMsg = snapshot.AuthError
		return a, nil
	}
	a.currentView = ViewTasks
	a.errMsg = ""
	a.loading = true
	return a, a.loadTasksCmd()
}

// showAuth switches to the auth view with a cleared form.
func (a *App) showAuth() {
	a.currentView = ViewAuth
	a.authForm.Reset()
	a.statusMsg = ""
	a.errMsg = ""
	a.loading = false
	a.setTasks(nil)
	a.user = nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case ViewAuth:
		return a.handleAuthKey(msg)
	case ViewTasks:
		return a.handleTasksKey(msg)
	case ViewTaskForm:
		return a.handleTaskFormKey(msg)
	case ViewConfirmDelete:
		return a.handleConfirmDeleteKey(msg)
	case ViewHelp:
		a.currentView = a.previousView
		return a, nil
	}
	return a, nil
}

func (a *App) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		if a.authForm.Mode == "login" {
			a.authForm.SetMode("register")
		} else {
			a.authForm.SetMode("login")
		}
		a.errMsg = ""
		return a, nil
	case "enter":
		if !a.authForm.IsValid() {
			a.errMsg = "Please fill in all fields"
			return a, nil
		}
		a.errMsg = ""
		a.statusMsg = ""
		creds := a.authForm.Credentials()
		if a.authForm.Mode == "register" {
			return a, a.registerCmd(creds)
		}
		return a, a.loginCmd(creds)
	}

	var cmd tea.Cmd
	a.authForm, cmd = a.authForm.Update(msg)
	return a, cmd
}

func (a *App) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "tab":
		a.switchPane()
		return a, nil
	case "a":
		a.taskForm = NewTaskForm()
		a.previousView = a.currentView
		a.currentView = ViewTaskForm
		return a, nil
	case "e":
		if task := a.focusedList().SelectedTask(); task != nil {
			a.taskForm = NewEditTaskForm(task)
			a.previousView = a.currentView
			a.currentView = ViewTaskForm
		}
		return a, nil
	case "d":
		if task := a.focusedList().SelectedTask(); task != nil {
			a.deleteTarget = task
			a.previousView = a.currentView
			a.currentView = ViewConfirmDelete
		}
		return a, nil
	case " ":
		if task := a.focusedList().SelectedTask(); task != nil {
			return a, a.toggleTaskCmd(task.ID, !task.Completed)
		}
		return a, nil
	case "y":
		if task := a.focusedList().SelectedTask(); task != nil {
			if err := clipboard.WriteAll(task.Title); err != nil {
				a.errMsg = "Clipboard unavailable"
			} else {
				a.statusMsg = "Yanked task title"
			}
		}
		return a, nil
	case "r":
		a.loading = true
		return a, a.loadTasksCmd()
	case "S":
		a.statusMsg = "Seeding..."
		return a, a.seedTasksCmd(seedCount)
	case "ctrl+l":
		return a, a.logoutCmd()
	case "?":
		a.previousView = a.currentView
		a.currentView = ViewHelp
		return a, nil
	}

	list := a.focusedList()
	_, cmd := list.Update(msg)
	return a, cmd
}

func (a *App) handleTaskFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.currentView = a.previousView
		a.taskForm = nil
		return a, nil
	case "enter":
		if a.taskForm == nil || !a.taskForm.IsValid() {
			return a, nil
		}
		form := a.taskForm
		a.taskForm = nil
		a.currentView = a.previousView
		if form.Mode == "edit" {
			return a, a.updateTaskCmd(form.TaskID, form.ToUpdateRequest())
		}
		return a, a.createTaskCmd(form.ToCreateRequest())
	}

	var cmd tea.Cmd
	a.taskForm, cmd = a.taskForm.Update(msg)
	return a, cmd
}

func (a *App) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		target := a.deleteTarget
		a.deleteTarget = nil
		a.currentView = a.previousView
		if target != nil {
			return a, a.deleteTaskCmd(target.ID)
		}
	case "n", "esc":
		a.deleteTarget = nil
		a.currentView = a.previousView
	}
	return a, nil
}
