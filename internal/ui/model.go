package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/domain"
	"todo/internal/errors"
	"todo/internal/session"
)

type view int

const (
	loginView view = iota
	taskView
)

type focus int

const (
	focusUsername focus = iota
	focusPassword
	focusDescription
	focusDue
	focusList
)

type loginMsg struct {
	user *domain.User
	err  error
}

type registerMsg struct {
	user *domain.User
	err  error
}

type tasksMsg struct {
	tasks []*domain.Task
	err   error
}

// actionMsg reports an add, complete or delete. Success reloads the list.
type actionMsg struct {
	status string
	err    error
	added  bool
}

// Model is the bubbletea model behind the tui command.
type Model struct {
	ctx        context.Context
	session    *session.Session
	now        func() time.Time
	dateFormat string
	theme      Theme
	styles     styles

	view  view
	focus focus

	username    field
	password    field
	description field
	due         field
	priority    domain.Priority

	tasks    []*domain.Task
	selected int

	status    string
	statusErr bool
}

// NewModel creates the model. A logged-in session opens on the task view.
func NewModel(ctx context.Context, s *session.Session, opts Options) *Model {
	opts = opts.withDefaults()
	m := &Model{
		ctx:        ctx,
		session:    s,
		now:        opts.Now,
		dateFormat: opts.DateFormat,
		theme:      ThemeByName(opts.Theme),
		password:   field{masked: true},
		focus:      focusUsername,
	}
	m.styles = newStyles(m.theme)
	if s.IsLoggedIn() {
		m.enterTaskView()
	}
	return m
}

// Init loads the task list when the session is already logged in.
func (m *Model) Init() tea.Cmd {
	if m.view == taskView {
		return m.loadTasks()
	}
	return nil
}

// Update handles key presses and results of store operations.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.view == loginView {
			return m.updateLogin(msg)
		}
		return m.updateTasks(msg)

	case loginMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.password.Reset()
		m.enterTaskView()
		m.setStatus("Logged in as " + msg.user.Username)
		return m, m.loadTasks()

	case registerMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("User registered: %s. Press enter to log in.", msg.user.Username))
		return m, nil

	case tasksMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.tasks = msg.tasks
		m.clampSelection()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		if msg.added {
			m.description.Reset()
		}
		m.setStatus(msg.status)
		return m, m.loadTasks()
	}

	return m, nil
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		if m.focus == focusUsername {
			m.focus = focusPassword
		} else {
			m.focus = focusUsername
		}
		return m, nil
	case "enter":
		return m, m.login(m.username.String(), m.password.String())
	case "ctrl+r":
		return m, m.register(m.username.String(), m.password.String())
	}

	if m.focus == focusPassword {
		m.password.handleKey(msg)
	} else {
		m.username.handleKey(msg)
	}
	return m, nil
}

func (m *Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+l":
		m.logout()
		return m, nil
	case "ctrl+t":
		m.toggleTheme()
		return m, nil
	}

	if m.focus == focusList {
		return m.updateList(msg)
	}

	switch msg.String() {
	case "enter":
		return m, m.addTask()
	case "tab":
		m.priority = m.priority.Next()
		return m, nil
	case "esc":
		m.focus = focusList
		return m, nil
	case "up":
		if m.focus == focusDue {
			m.focus = focusDescription
		}
		return m, nil
	case "down":
		if m.focus == focusDescription {
			m.focus = focusDue
		} else {
			m.focus = focusList
		}
		return m, nil
	}

	if m.focus == focusDue {
		m.due.handleKey(msg)
	} else {
		m.description.handleKey(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected == 0 {
			m.focus = focusDue
			return m, nil
		}
		m.selected--
	case "down", "j":
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}
	case "c":
		if task := m.selectedTask(); task != nil {
			return m, m.completeTask(task.ID)
		}
	case "d":
		if task := m.selectedTask(); task != nil {
			return m, m.deleteTask(task.ID)
		}
	case "t":
		m.toggleTheme()
	case "tab":
		m.priority = m.priority.Next()
	case "a", "i", "esc":
		m.focus = focusDescription
	case "r":
		return m, m.loadTasks()
	}
	return m, nil
}

func (m *Model) enterTaskView() {
	m.view = taskView
	m.focus = focusDescription
	m.priority = domain.PriorityMedium
	m.description.Reset()
	m.due.Set(domain.DateOf(m.now()).Format(domain.DateLayout))
}

func (m *Model) logout() {
	m.session.Logout()
	m.view = loginView
	m.focus = focusUsername
	m.username.Reset()
	m.password.Reset()
	m.tasks = nil
	m.selected = 0
	m.setStatus("Logged out")
}

func (m *Model) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.styles = newStyles(m.theme)
}

func (m *Model) selectedTask() *domain.Task {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.selected]
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = errors.GetUserMessage(err)
	m.statusErr = true
}

func (m *Model) login(username, password string) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		user, err := s.Login(ctx, username, password)
		return loginMsg{user: user, err: err}
	}
}

func (m *Model) register(username, password string) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		user, err := s.Register(ctx, username, password)
		return registerMsg{user: user, err: err}
	}
}

func (m *Model) loadTasks() tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		tasks, err := s.ListTasks(ctx, domain.TaskFilter{})
		return tasksMsg{tasks: tasks, err: err}
	}
}

// addTask adds from the input fields. Priority and due date stay for the
// next task.
func (m *Model) addTask() tea.Cmd {
	ctx, s := m.ctx, m.session
	description, priority, due := m.description.String(), string(m.priority), m.due.String()
	return func() tea.Msg {
		task, err := s.AddTask(ctx, description, priority, due)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Added: " + task.Description, added: true}
	}
}

func (m *Model) completeTask(id int64) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		task, err := s.CompleteTask(ctx, id)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Completed: " + task.Description}
	}
}

func (m *Model) deleteTask(id int64) tea.Cmd {
	ctx, s := m.ctx, m.session
	return func() tea.Msg {
		if err := s.DeleteTask(ctx, id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Deleted"}
	}
}
