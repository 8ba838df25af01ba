package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zentask/zentask/internal/tui/styles"
)

// View implements tea.Model.
func (a *App) View() string {
	switch a.currentView {
	case ViewLoading:
		return styles.App.Render(a.spinner.View() + " Loading session...")
	case ViewAuth:
		return a.viewAuth()
	case ViewTaskForm:
		return a.viewDialog(a.taskForm.View())
	case ViewConfirmDelete:
		return a.viewConfirmDelete()
	case ViewHelp:
		return a.viewHelp()
	default:
		return a.viewTasks()
	}
}

func (a *App) viewAuth() string {
	var b strings.Builder
	b.WriteString(a.authForm.View())
	if a.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.StatusBarError.Render(a.errMsg))
	}
	return a.centered(styles.Dialog.Render(b.String()))
}

func (a *App) viewTasks() string {
	var b strings.Builder

	header := "Zentask"
	if a.user != nil {
		header = fmt.Sprintf("Zentask | %s", a.user.Username)
	}
	b.WriteString(styles.Title.Render(header))
	b.WriteString("\n\n")

	todoPane := styles.Pane
	donePane := styles.Pane
	if a.focusedPane == PaneTodo {
		todoPane = styles.PaneFocused
	} else {
		donePane = styles.PaneFocused
	}

	if a.loading {
		b.WriteString(a.spinner.View() + " Loading tasks...")
	} else {
		panes := lipgloss.JoinHorizontal(
			lipgloss.Top,
			todoPane.Render(a.todoList.View()),
			donePane.Render(a.doneList.View()),
		)
		b.WriteString(panes)
	}

	b.WriteString("\n")
	b.WriteString(a.viewStatusBar())
	return styles.App.Render(b.String())
}

func (a *App) viewStatusBar() string {
	if a.errMsg != "" {
		return styles.StatusBarError.Render(a.errMsg)
	}
	if a.statusMsg != "" {
		return styles.StatusBarSuccess.Render(a.statusMsg)
	}
	return styles.StatusBar.Render("a: add | e: edit | d: delete | space: toggle | tab: pane | ?: help")
}

func (a *App) viewConfirmDelete() string {
	title := ""
	if a.deleteTarget != nil {
		title = a.deleteTarget.Title
	}
	content := fmt.Sprintf("%s\n\nDelete %q?\n\n%s",
		styles.DialogTitle.Render("Confirm Delete"),
		title,
		styles.HelpDesc.Render("y: delete | n: cancel"))
	return a.viewDialog(content)
}

func (a *App) viewHelp() string {
	rows := [][2]string{
		{"j/k, up/down", "move cursor"},
		{"g/G", "jump to top/bottom"},
		{"ctrl+d/ctrl+u", "half-page scroll"},
		{"tab", "switch between panes"},
		{"enter, space", "toggle completion"},
		{"a", "add task"},
		{"e", "edit task"},
		{"d", "delete task"},
		{"y", "copy task title"},
		{"r", "reload tasks"},
		{"S", "seed mock tasks"},
		{"ctrl+l", "log out"},
		{"q, ctrl+c", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			styles.HelpKey.Render(fmt.Sprintf("%-14s", row[0])),
			styles.HelpDesc.Render(row[1])))
	}
	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("Press any key to close"))
	return a.viewDialog(b.String())
}

func (a *App) viewDialog(content string) string {
	return a.centered(styles.Dialog.Render(content))
}

func (a *App) centered(content string) string {
	if a.width == 0 || a.height == 0 {
		return content
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}
