package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/zentask/zentask/internal/api"
	"github.com/zentask/zentask/internal/tui/styles"
	"github.com/zentask/zentask/internal/vlist"
)

// virtualizeThreshold is the list length below which windowing is
// skipped and every row is rendered.
const virtualizeThreshold = 100

// TaskListModel manages a scrollable, windowed list of tasks. Rows are
// keyed by task id so measured heights survive refetches.
type TaskListModel struct {
	tasks         []api.Task
	cursor        int
	scrollTop     int
	width, height int
	focused       bool
	vl            *vlist.Virtualizer
	title         string
	emptyMessage  string
	loading       bool
	err           error
	vimMode       bool
}

// NewTaskList creates a new TaskListModel.
func NewTaskList(title string) *TaskListModel {
	return &TaskListModel{
		tasks: []api.Task{},
		vl: vlist.New(vlist.Options{
			EstimateSize: 1,
			Overscan:     5,
			BypassCount:  virtualizeThreshold,
		}),
		title:        title,
		emptyMessage: "No tasks",
		vimMode:      true,
	}
}

// Init implements Component.
func (t *TaskListModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (t *TaskListModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKeyMsg(msg)
	}
	return t, nil
}

// handleKeyMsg processes keyboard input.
func (t *TaskListModel) handleKeyMsg(msg tea.KeyMsg) (Component, tea.Cmd) {
	key := msg.String()
	switch key {
	case "down":
		t.MoveCursor(1)
	case "up":
		t.MoveCursor(-1)
	case "ctrl+d":
		t.MoveCursor(10)
	case "ctrl+u":
		t.MoveCursor(-10)
	case "enter":
		if task := t.SelectedTask(); task != nil {
			selected := *task
			return t, func() tea.Msg {
				return TaskSelectedMsg{Task: &selected}
			}
		}
	}

	if t.vimMode {
		switch key {
		case "j":
			t.MoveCursor(1)
		case "k":
			t.MoveCursor(-1)
		case "g":
			t.cursor = 0
			t.scrollTop = 0
		case "G":
			if len(t.tasks) > 0 {
				t.cursor = len(t.tasks) - 1
			}
		}
	}
	return t, nil
}

// View implements Component.
func (t *TaskListModel) View() string {
	var b strings.Builder

	titleStyle := styles.Title
	if !t.focused {
		titleStyle = styles.TitleBlurred
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", t.title, len(t.tasks))))
	b.WriteString("\n")

	if t.loading {
		b.WriteString("Loading...")
		return b.String()
	}
	if t.err != nil {
		b.WriteString(styles.StatusBarError.Render(fmt.Sprintf("Error: %v", t.err)))
		return b.String()
	}
	if len(t.tasks) == 0 {
		b.WriteString(t.emptyMessage)
		return b.String()
	}

	b.WriteString(t.renderWindow(t.height - 1))
	return b.String()
}

// SetSize implements Component.
func (t *TaskListModel) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// Focus sets focus on the task list.
func (t *TaskListModel) Focus() {
	t.focused = true
}

// Blur removes focus.
func (t *TaskListModel) Blur() {
	t.focused = false
}

// Focused returns focus state.
func (t *TaskListModel) Focused() bool {
	return t.focused
}

// SetVimMode enables or disables vim-style navigation keys.
func (t *TaskListModel) SetVimMode(enabled bool) {
	t.vimMode = enabled
}

// SetTasks replaces the task list, keeping the cursor on the same task
// id where possible.
func (t *TaskListModel) SetTasks(tasks []api.Task) {
	var currentID string
	if task := t.SelectedTask(); task != nil {
		currentID = task.ID
	}

	t.tasks = tasks
	t.loading = false
	t.err = nil

	keys := make([]string, len(tasks))
	for i, task := range tasks {
		keys[i] = task.ID
	}
	t.vl.SetKeys(keys)

	t.cursor = 0
	if currentID != "" {
		for i, task := range tasks {
			if task.ID == currentID {
				t.cursor = i
				break
			}
		}
	}
	if t.cursor >= len(tasks) {
		t.cursor = 0
	}
}

// SetLoading sets loading state.
func (t *TaskListModel) SetLoading(loading bool) {
	t.loading = loading
}

// SetError sets error state.
func (t *TaskListModel) SetError(err error) {
	t.err = err
}

// Len returns the number of tasks.
func (t *TaskListModel) Len() int {
	return len(t.tasks)
}

// SelectedTask returns the task under the cursor.
func (t *TaskListModel) SelectedTask() *api.Task {
	if t.cursor >= 0 && t.cursor < len(t.tasks) {
		return &t.tasks[t.cursor]
	}
	return nil
}

// MoveCursor moves the cursor by delta, clamped to the list bounds.
func (t *TaskListModel) MoveCursor(delta int) {
	t.cursor += delta
	if t.cursor < 0 {
		t.cursor = 0
	}
	if len(t.tasks) > 0 && t.cursor >= len(t.tasks) {
		t.cursor = len(t.tasks) - 1
	}
}

// renderWindow renders the rows intersecting the viewport. Row heights
// are measured from their rendered line counts, so tasks with a
// description occupy two lines.
func (t *TaskListModel) renderWindow(viewportHeight int) string {
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	t.syncScroll(viewportHeight)

	rows := t.vl.Rows(t.scrollTop, viewportHeight)

	var lines []string
	for _, row := range rows {
		content := t.renderTask(row.Index)
		rendered := strings.Split(content, "\n")
		t.vl.Measure(row.Key, len(rendered))

		// Clip lines scrolled past the viewport edges.
		for j, line := range rendered {
			pos := row.Start + j
			if pos < t.scrollTop || pos >= t.scrollTop+viewportHeight {
				continue
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// syncScroll keeps the cursor row inside the viewport.
func (t *TaskListModel) syncScroll(viewportHeight int) {
	if t.cursor < 0 || t.cursor >= t.vl.Len() {
		t.scrollTop = 0
		return
	}
	start := t.vl.Offset(t.cursor)
	end := start + t.vl.Size(t.cursor)

	if start < t.scrollTop {
		t.scrollTop = start
	} else if end > t.scrollTop+viewportHeight {
		t.scrollTop = end - viewportHeight
	}
	if t.scrollTop < 0 {
		t.scrollTop = 0
	}
}

// renderTask renders a single task, one line plus an optional
// description line.
func (t *TaskListModel) renderTask(i int) string {
	task := t.tasks[i]

	cursor := "  "
	if i == t.cursor && t.focused {
		cursor = "> "
	}

	checkbox := styles.CheckboxUnchecked
	if task.Completed {
		checkbox = styles.CheckboxChecked
	}

	maxWidth := t.width - 8
	if maxWidth < 10 {
		maxWidth = 10
	}
	title := runewidth.Truncate(task.Title, maxWidth, "…")

	line := fmt.Sprintf("%s%s %s", cursor, checkbox, title)

	style := styles.TaskItem
	if i == t.cursor && t.focused {
		style = styles.TaskSelected
	} else if task.Completed {
		style = styles.TaskCompleted
	}
	out := style.Render(line)

	if task.Description != "" {
		desc := runewidth.Truncate(task.Description, maxWidth, "…")
		out += "\n" + styles.TaskDescription.Render(desc)
	}
	return out
}
