package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formKind int

const (
	formAddTask formKind = iota
	formSignIn
	formSignUp
)

type field struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

// form is a column of text inputs with one focused at a time.
type form struct {
	kind    formKind
	title   string
	labels  []string
	inputs  []textinput.Model
	focused int
}

func newForm(kind formKind, title string, fields ...field) *form {
	f := &form{kind: kind, title: title}
	for _, fd := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = fd.placeholder
		in.CharLimit = fd.limit
		in.Width = 32
		if fd.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, in)
	}
	return f
}

func newAddTaskForm(participants []string) *form {
	assignee := "who does it"
	if len(participants) > 0 {
		assignee = strings.Join(participants, ", ")
	}
	return newForm(formAddTask, "New task",
		field{label: "Task", placeholder: "Dishes", limit: 80},
		field{label: "Assigned to", placeholder: assignee, limit: 40},
		field{label: "Due date", placeholder: "YYYY-MM-DD (optional)", limit: 10},
		field{label: "Priority", placeholder: "High, Medium or Low", limit: 6},
	)
}

func newSignInForm() *form {
	return newForm(formSignIn, "Sign in",
		field{label: "Email", placeholder: "you@example.com", limit: 120},
		field{label: "Password", secret: true, limit: 120},
	)
}

func newSignUpForm() *form {
	return newForm(formSignUp, "Create an account",
		field{label: "Display name", placeholder: "Ana", limit: 40},
		field{label: "Email", placeholder: "you@example.com", limit: 120},
		field{label: "Password", secret: true, limit: 120},
	)
}

func (f *form) focus(i int) tea.Cmd {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focused = i
	return f.inputs[i].Focus()
}

func (f *form) next() tea.Cmd {
	return f.focus((f.focused + 1) % len(f.inputs))
}

func (f *form) prev() tea.Cmd {
	return f.focus((f.focused + len(f.inputs) - 1) % len(f.inputs))
}

func (f *form) onLast() bool {
	return f.focused == len(f.inputs)-1
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

// clearSecrets empties password inputs after a failed submit.
func (f *form) clearSecrets() {
	for i := range f.inputs {
		if f.inputs[i].EchoMode == textinput.EchoPassword {
			f.inputs[i].Reset()
		}
	}
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(f.title) + "\n")
	for i, in := range f.inputs {
		label := labelStyle.Render(padRight(f.labels[i], 14))
		if i == f.focused {
			label = focusStyle.Render(padRight(f.labels[i], 14))
		}
		b.WriteString("  " + label + in.View() + "\n")
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
