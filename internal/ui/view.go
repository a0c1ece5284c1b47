package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gurkanbulca/choreboard/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true).
			Underline(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Strikethrough(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	highStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	mediumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	lowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	leaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	pingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("46")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("46"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1)
)

func (m *tuiModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Chore Board") + "\n\n")
	writeTabs(&b, m.page)
	m.writeSession(&b)

	switch m.page {
	case PageHome:
		m.writeTasks(&b)
	case PageLeaderboard:
		m.writeLeaderboard(&b)
	case PageSignIn, PageSignUp:
		if m.form != nil {
			b.WriteString(m.form.view())
		}
	case PageHelp:
		writeHelp(&b)
	}

	if m.mode == modeConfirmReset {
		b.WriteString("\n" + errorStyle.Render("Reset all points and clear every task? (y/n)") + "\n")
	}
	if m.status != "" {
		style := okStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}
	b.WriteString(footerStyle.Render(m.footer()) + "\n")
	return b.String()
}

func writeTabs(b *strings.Builder, current Page) {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf("%s %s", t.key, t.title)
		if t.page == current {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(parts, "  ") + "\n\n")
}

func (m *tuiModel) writeSession(b *strings.Builder) {
	session := m.svc.Auth.CurrentSession()
	if session == nil {
		b.WriteString(dimStyle.Render("Not signed in. Press i to sign in or u to create an account.") + "\n\n")
		return
	}
	b.WriteString(fmt.Sprintf("Signed in as %s %s\n\n", focusStyle.Render(session.DisplayName), dimStyle.Render("("+session.Email+")")))
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	if m.form != nil {
		b.WriteString(m.form.view() + "\n")
	}
	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View() + "\n\n")
	}

	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		if m.search.Value() != "" {
			b.WriteString(dimStyle.Render("  No tasks match your search.") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  No tasks yet. Press a to add one.") + "\n")
		}
	}
	for i, t := range tasks {
		b.WriteString(m.formatTask(t, i == m.cursor) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%d task(s)", len(tasks))) + "\n")
}

func (m *tuiModel) formatTask(t models.Task, selected bool) string {
	cursor := "  "
	if selected && m.mode == modeBrowse {
		cursor = cursorStyle.Render("> ")
	}

	check := "[ ]"
	name := t.Name
	if t.Done {
		check = "[x]"
		name = doneStyle.Render(name)
	}

	due := "No due date"
	if t.HasDueDate() {
		due = "Due " + t.DueDate
	}

	return fmt.Sprintf("%s%s %s  %s  %s  %s",
		cursor, check, name,
		priorityBadge(t.Priority),
		labelStyle.Render("@"+t.Assigned),
		dimStyle.Render(due))
}

func priorityBadge(p models.Priority) string {
	label := "[" + string(p) + "]"
	switch p {
	case models.PriorityHigh:
		return highStyle.Render(label)
	case models.PriorityMedium:
		return mediumStyle.Render(label)
	case models.PriorityLow:
		return lowStyle.Render(label)
	default:
		return dimStyle.Render(label)
	}
}

func (m *tuiModel) writeLeaderboard(b *strings.Builder) {
	b.WriteString(sectionStyle.Render("Leaderboard") + "\n\n")

	standings := m.svc.Scoring.Standings()
	if len(standings) == 0 {
		b.WriteString(dimStyle.Render("  Nobody is on the board yet.") + "\n")
		return
	}
	for i, s := range standings {
		line := fmt.Sprintf("%2d. %-14s %4d pts", i+1, s.Participant, s.Points)
		switch {
		case s.Participant == m.pinged:
			line = pingStyle.Render(line)
		case i == 0 && s.Points > 0:
			line = leaderStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString(sectionStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  1-4, h/l/i/u   Switch page (tasks, leaderboard, sign in, sign up)\n")
	b.WriteString("  j/k, up/down   Move the selection\n")
	b.WriteString("  enter, x       Complete the selected task\n")
	b.WriteString("  a              Add a task\n")
	b.WriteString("  /              Search tasks by name (esc clears)\n")
	b.WriteString("  R              Reset points and clear all tasks\n")
	b.WriteString("  o              Sign out\n")
	b.WriteString("  ?              Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n")
}

func (m *tuiModel) footer() string {
	switch m.mode {
	case modeForm:
		return "tab next field | enter submit | esc cancel"
	case modeSearch:
		return "type to filter | enter keep | esc clear"
	case modeConfirmReset:
		return "y confirm | n cancel"
	}
	return "? help | q quit"
}
