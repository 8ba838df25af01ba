// Package styles provides Lip Gloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
)

// Base styles
var (
	// App is the base style for the entire application
	App = lipgloss.NewStyle().
		Padding(1, 2)

	// Title is the style for pane titles
	// NOTE: No margins - they break scroll line counting
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	TitleBlurred = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)

	StatusBar = lipgloss.NewStyle().
			Foreground(Subtle)

	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor)

	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor)
)

// Task styles
var (
	// TaskItem is the base style for a task line
	TaskItem = lipgloss.NewStyle().
			PaddingLeft(2)

	// TaskSelected is the style for the task under the cursor
	TaskSelected = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeftForeground(Highlight).
			Bold(true)

	// TaskCompleted is the style for completed tasks
	TaskCompleted = lipgloss.NewStyle().
			PaddingLeft(2).
			Faint(true).
			Strikethrough(true)

	// TaskDescription is for description lines under a task
	TaskDescription = lipgloss.NewStyle().
			Foreground(Subtle).
			Faint(true).
			Italic(true).
			PaddingLeft(6)

	CheckboxUnchecked = "[ ]"
	CheckboxChecked   = "[x]"
)

// Form and dialog styles
var (
	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)

	InputLabel = lipgloss.NewStyle().
			Foreground(Subtle)

	HelpKey = lipgloss.NewStyle().
		Foreground(Highlight)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Pane styles
var (
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	PaneFocused = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)
)
