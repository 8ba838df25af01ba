package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zentask/zentask/internal/api"
	"github.com/zentask/zentask/internal/tui/styles"
)

// AuthField represents which field is focused in the auth form.
type AuthField int

const (
	AuthFieldUsername AuthField = iota
	AuthFieldPassword
	AuthFieldConfirm
)

// AuthForm manages the login and registration forms.
type AuthForm struct {
	// Mode is "login" or "register".
	Mode string

	UsernameInput textinput.Model
	PasswordInput textinput.Model
	ConfirmInput  textinput.Model

	FocusedField AuthField
}

// NewAuthForm creates an auth form in login mode.
func NewAuthForm() *AuthForm {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 32
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 72
	password.Width = 32
	password.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password"
	confirm.CharLimit = 72
	confirm.Width = 32
	confirm.EchoMode = textinput.EchoPassword

	return &AuthForm{
		Mode:          "login",
		UsernameInput: username,
		PasswordInput: password,
		ConfirmInput:  confirm,
	}
}

// SetMode switches between login and register, resetting focus.
func (f *AuthForm) SetMode(mode string) {
	f.Mode = mode
	f.blurCurrent()
	f.FocusedField = AuthFieldUsername
	f.focusCurrent()
}

func (f *AuthForm) fieldCount() int {
	if f.Mode == "register" {
		return 3
	}
	return 2
}

// Update handles input for the form.
func (f *AuthForm) Update(msg tea.Msg) (*AuthForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.nextField()
			return f, nil
		case "shift+tab", "up":
			f.prevField()
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.FocusedField {
	case AuthFieldUsername:
		f.UsernameInput, cmd = f.UsernameInput.Update(msg)
	case AuthFieldPassword:
		f.PasswordInput, cmd = f.PasswordInput.Update(msg)
	case AuthFieldConfirm:
		f.ConfirmInput, cmd = f.ConfirmInput.Update(msg)
	}
	return f, cmd
}

func (f *AuthForm) nextField() {
	f.blurCurrent()
	f.FocusedField = AuthField((int(f.FocusedField) + 1) % f.fieldCount())
	f.focusCurrent()
}

func (f *AuthForm) prevField() {
	f.blurCurrent()
	f.FocusedField = AuthField((int(f.FocusedField) - 1 + f.fieldCount()) % f.fieldCount())
	f.focusCurrent()
}

func (f *AuthForm) blurCurrent() {
	switch f.FocusedField {
	case AuthFieldUsername:
		f.UsernameInput.Blur()
	case AuthFieldPassword:
		f.PasswordInput.Blur()
	case AuthFieldConfirm:
		f.ConfirmInput.Blur()
	}
}

func (f *AuthForm) focusCurrent() {
	switch f.FocusedField {
	case AuthFieldUsername:
		f.UsernameInput.Focus()
	case AuthFieldPassword:
		f.PasswordInput.Focus()
	case AuthFieldConfirm:
		f.ConfirmInput.Focus()
	}
}

// Credentials returns the entered username and password.
func (f *AuthForm) Credentials() api.Credentials {
	return api.Credentials{
		Username: strings.TrimSpace(f.UsernameInput.Value()),
		Password: f.PasswordInput.Value(),
	}
}

// IsValid returns true if the form can be submitted.
func (f *AuthForm) IsValid() bool {
	creds := f.Credentials()
	if creds.Username == "" || creds.Password == "" {
		return false
	}
	if f.Mode == "register" && f.ConfirmInput.Value() != creds.Password {
		return false
	}
	return true
}

// Reset clears all inputs.
func (f *AuthForm) Reset() {
	f.UsernameInput.SetValue("")
	f.PasswordInput.SetValue("")
	f.ConfirmInput.SetValue("")
	f.blurCurrent()
	f.FocusedField = AuthFieldUsername
	f.focusCurrent()
}

// View renders the form.
func (f *AuthForm) View() string {
	var b strings.Builder

	title := "Log In"
	if f.Mode == "register" {
		title = "Create Account"
	}
	b.WriteString(styles.DialogTitle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(f.renderField("Username", f.UsernameInput.View(), AuthFieldUsername))
	b.WriteString("\n")
	b.WriteString(f.renderField("Password", f.PasswordInput.View(), AuthFieldPassword))
	b.WriteString("\n")
	if f.Mode == "register" {
		b.WriteString(f.renderField("Confirm Password", f.ConfirmInput.View(), AuthFieldConfirm))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switchHint := "Ctrl+R: create account instead"
	if f.Mode == "register" {
		switchHint = "Ctrl+R: log in instead"
	}
	b.WriteString(styles.HelpDesc.Render("Tab: next field | Enter: submit | " + switchHint))

	return b.String()
}

func (f *AuthForm) renderField(label, input string, field AuthField) string {
	labelStyle := styles.InputLabel
	if f.FocusedField == field {
		labelStyle = labelStyle.Foreground(styles.Highlight)
	}
	return labelStyle.Render(label) + "\n" + input + "\n"
}

// TaskFormField represents which field is focused in the task form.
type TaskFormField int

const (
	TaskFieldTitle TaskFormField = iota
	TaskFieldDescription
)

const taskFieldCount = 2

// TaskForm manages the state of the add/edit task form.
type TaskForm struct {
	// Mode is "add" or "edit".
	Mode   string
	TaskID string

	TitleInput       textinput.Model
	DescriptionInput textinput.Model

	FocusedField TaskFormField
}

// NewTaskForm creates a new task form for adding a task.
func NewTaskForm() *TaskForm {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200
	title.Width = 50
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 2000
	desc.Width = 50

	return &TaskForm{
		Mode:             "add",
		TitleInput:       title,
		DescriptionInput: desc,
	}
}

// NewEditTaskForm creates a task form pre-populated for editing.
func NewEditTaskForm(task *api.Task) *TaskForm {
	form := NewTaskForm()
	form.Mode = "edit"
	form.TaskID = task.ID
	form.TitleInput.SetValue(task.Title)
	form.DescriptionInput.SetValue(task.Description)
	return form
}

// Update handles input for the form.
func (f *TaskForm) Update(msg tea.Msg) (*TaskForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.nextField()
			return f, nil
		case "shift+tab", "up":
			f.prevField()
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.FocusedField {
	case TaskFieldTitle:
		f.TitleInput, cmd = f.TitleInput.Update(msg)
	case TaskFieldDescription:
		f.DescriptionInput, cmd = f.DescriptionInput.Update(msg)
	}
	return f, cmd
}

func (f *TaskForm) nextField() {
	f.blurCurrent()
	f.FocusedField = TaskFormField((int(f.FocusedField) + 1) % taskFieldCount)
	f.focusCurrent()
}

func (f *TaskForm) prevField() {
	f.blurCurrent()
	f.FocusedField = TaskFormField((int(f.FocusedField) - 1 + taskFieldCount) % taskFieldCount)
	f.focusCurrent()
}

func (f *TaskForm) blurCurrent() {
	switch f.FocusedField {
	case TaskFieldTitle:
		f.TitleInput.Blur()
	case TaskFieldDescription:
		f.DescriptionInput.Blur()
	}
}

func (f *TaskForm) focusCurrent() {
	switch f.FocusedField {
	case TaskFieldTitle:
		f.TitleInput.Focus()
	case TaskFieldDescription:
		f.DescriptionInput.Focus()
	}
}

// IsValid returns true if the form has valid data for submission.
func (f *TaskForm) IsValid() bool {
	return strings.TrimSpace(f.TitleInput.Value()) != ""
}

// ToCreateRequest converts the form to a CreateTaskRequest.
func (f *TaskForm) ToCreateRequest() api.CreateTaskRequest {
	return api.CreateTaskRequest{
		Title:       strings.TrimSpace(f.TitleInput.Value()),
		Description: strings.TrimSpace(f.DescriptionInput.Value()),
	}
}

// ToUpdateRequest converts the form to an UpdateTaskRequest.
func (f *TaskForm) ToUpdateRequest() api.UpdateTaskRequest {
	title := strings.TrimSpace(f.TitleInput.Value())
	desc := strings.TrimSpace(f.DescriptionInput.Value())
	return api.UpdateTaskRequest{
		Title:       &title,
		Description: &desc,
	}
}

// View renders the form.
func (f *TaskForm) View() string {
	var b strings.Builder

	title := "Add Task"
	if f.Mode == "edit" {
		title = "Edit Task"
	}
	b.WriteString(styles.DialogTitle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(f.renderField("Title", f.TitleInput.View(), TaskFieldTitle))
	b.WriteString("\n")
	b.WriteString(f.renderField("Description", f.DescriptionInput.View(), TaskFieldDescription))
	b.WriteString("\n")

	b.WriteString(styles.HelpDesc.Render("Tab: next field | Enter: submit | Esc: cancel"))
	return b.String()
}

func (f *TaskForm) renderField(label, input string, field TaskFormField) string {
	labelStyle := styles.InputLabel
	if f.FocusedField == field {
		labelStyle = labelStyle.Foreground(styles.Highlight)
	}
	return labelStyle.Render(label) + "\n" + input + "\n"
}
