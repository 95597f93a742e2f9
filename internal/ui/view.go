package ui

import (
	"fmt"
	"strings"

	"todo/internal/domain"
)

// View renders the current screen.
func (m *Model) View() string {
	var b strings.Builder
	if m.view == loginView {
		m.writeLogin(&b)
	} else {
		m.writeTasks(&b)
	}
	m.writeStatus(&b)
	return m.styles.app.Render(b.String())
}

func (m *Model) writeLogin(b *strings.Builder) {
	b.WriteString(m.styles.title.Render("Smart Login") + "\n")
	b.WriteString(m.renderField("Username", m.username.display(), m.focus == focusUsername) + "\n")
	b.WriteString(m.renderField("Password", m.password.display(), m.focus == focusPassword) + "\n\n")
	b.WriteString(m.styles.help.Render("enter login | ctrl+r register | tab switch field | esc quit") + "\n")
}

func (m *Model) writeTasks(b *strings.Builder) {
	title := "My Tasks"
	if user, ok := m.session.User(); ok {
		title = fmt.Sprintf("My Tasks (%s)", user.Username)
	}
	b.WriteString(m.styles.title.Render(title) + "\n")
	b.WriteString(m.renderField("Task", m.description.display(), m.focus == focusDescription) + "\n")
	b.WriteString(m.renderField("Priority", string(m.priority), false) + "\n")
	b.WriteString(m.renderField("Due", m.due.display(), m.focus == focusDue) + "\n\n")

	b.WriteString(m.styles.list.Render(m.renderRows()) + "\n\n")

	help := "enter add | tab priority | down list | ctrl+l logout | ctrl+c quit"
	if m.focus == focusList {
		help = "up/down select | c complete | d delete | t theme (" + m.theme.Name + ") | a add | ctrl+l logout | q quit"
	}
	b.WriteString(m.styles.help.Render(help) + "\n")
}

func (m *Model) renderRows() string {
	if len(m.tasks) == 0 {
		return m.styles.help.Render("No tasks yet")
	}

	now := m.now()
	rows := make([]string, 0, len(m.tasks))
	for i, t := range m.tasks {
		line := m.formatTask(t)
		if t.IsOverdue(now) {
			line += " !"
		}

		style := m.styles.row
		if t.IsCompleted() {
			style = m.styles.done
		}
		cursor := "  "
		if m.focus == focusList && i == m.selected {
			cursor = "> "
			style = m.styles.selected
		}
		rows = append(rows, cursor+style.Render(line))
	}
	return strings.Join(rows, "\n")
}

// formatTask renders "description | priority | due | status".
func (m *Model) formatTask(t *domain.Task) string {
	return fmt.Sprintf("%s | %s | %s | %s", t.Description, t.Priority, t.DueDate.Format(m.dateFormat), t.Status)
}

func (m *Model) renderField(label, value string, focused bool) string {
	style := m.styles.input
	if focused {
		style = m.styles.focused
		value += "_"
	}
	return m.styles.label.Render(label+":") + " " + style.Render(value)
}

func (m *Model) writeStatus(b *strings.Builder) {
	if m.status == "" {
		return
	}
	b.WriteString("\n")
	if m.statusErr {
		b.WriteString(m.styles.errorMsg.Render(m.status))
		return
	}
	b.WriteString(m.styles.status.Render(m.status))
}
