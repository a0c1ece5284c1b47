package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gurkanbulca/choreboard/internal/logging"
	"github.com/gurkanbulca/choreboard/internal/models"
	"github.com/gurkanbulca/choreboard/internal/service"
)

// pingDuration is how long a participant who just scored stays highlighted.
const pingDuration = 900 * time.Millisecond

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirmReset
)

// removeMsg finalizes a completed task once its grace delay has passed.
type removeMsg struct {
	id string
}

type pingDoneMsg struct {
	seq int
}

type tuiModel struct {
	ctx    context.Context
	svc    Services
	logger *logging.Logger

	page     Page
	prevPage Page
	mode     mode
	cursor   int
	search   textinput.Model
	form     *form

	status   string
	failed   bool
	fading   map[string]bool
	pinged   string
	pingSeq  int
	quitting bool
}

func newModel(ctx context.Context, svc Services, cfg *tuiConfig) *tuiModel {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "task name"
	search.CharLimit = 64
	search.Width = 32

	m := &tuiModel{
		ctx:      ctx,
		svc:      svc,
		logger:   cfg.logger,
		page:     PageHome,
		prevPage: PageHome,
		search:   search,
		fading:   make(map[string]bool),
	}
	m.goTo(cfg.startPage)
	return m
}

// Init schedules removal of tasks that were completed in an earlier run but
// never removed.
func (m *tuiModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.svc.Tasks.ListView("") {
		if t.Done {
			cmds = append(cmds, m.scheduleRemoval(t.ID))
		}
	}
	if m.form != nil {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m, m.updateForm(msg)
		case modeSearch:
			return m, m.updateSearch(msg)
		case modeConfirmReset:
			m.updateConfirm(msg)
			return m, nil
		}
		return m, m.handleKey(msg)
	case removeMsg:
		delete(m.fading, msg.id)
		if err := m.svc.Tasks.FinalizeRemoval(m.ctx, msg.id); err != nil {
			m.fail(err)
		}
		m.clampCursor()
		return m, nil
	case pingDoneMsg:
		if msg.seq == m.pingSeq {
			m.pinged = ""
		}
		return m, nil
	}

	// Cursor blinks and other input plumbing.
	var cmd tea.Cmd
	switch {
	case m.form != nil:
		cmd = m.form.update(msg)
	case m.mode == modeSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m *tuiModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""

	switch msg.String() {
	case "q":
		m.quitting = true
		return tea.Quit
	case "?":
		if m.page == PageHelp {
			return m.goTo(m.prevPage)
		}
		return m.goTo(PageHelp)
	case "esc":
		if m.page == PageHelp {
			return m.goTo(m.prevPage)
		}
		return nil
	case "h", "1":
		return m.goTo(PageHome)
	case "l", "2":
		return m.goTo(PageLeaderboard)
	case "i", "3":
		return m.goTo(PageSignIn)
	case "u", "4":
		return m.goTo(PageSignUp)
	case "o":
		m.signOut()
		return nil
	case "R":
		if m.svc.Auth.CurrentSession() == nil {
			m.failWith("Sign in to reset the board.")
			return nil
		}
		m.mode = modeConfirmReset
		return nil
	}

	if m.page != PageHome {
		return nil
	}

	switch msg.String() {
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "/":
		m.mode = modeSearch
		return m.search.Focus()
	case "a":
		if m.svc.Auth.CurrentSession() == nil {
			m.failWith("Sign in to add tasks.")
			return nil
		}
		m.form = newAddTaskForm(m.participants())
		m.mode = modeForm
		return m.form.focus(0)
	case "enter", " ", "x":
		return m.completeSelected()
	}
	return nil
}

// goTo switches page, opening the page's form if it has one.
func (m *tuiModel) goTo(page Page) tea.Cmd {
	if page == "" {
		page = PageHome
	}
	if page == PageHelp && m.page != PageHelp {
		m.prevPage = m.page
	}

	m.page = page
	m.mode = modeBrowse
	m.form = nil
	m.search.Blur()

	switch page {
	case PageSignIn:
		m.form = newSignInForm()
	case PageSignUp:
		m.form = newSignUpForm()
	default:
		return nil
	}
	m.mode = modeForm
	return m.form.focus(0)
}

func (m *tuiModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.form.kind == formAddTask {
			m.form = nil
			m.mode = modeBrowse
			return nil
		}
		return m.goTo(PageHome)
	case "tab", "down":
		return m.form.next()
	case "shift+tab", "up":
		return m.form.prev()
	case "enter":
		if !m.form.onLast() {
			return m.form.next()
		}
		return m.submitForm()
	}
	return m.form.update(msg)
}

func (m *tuiModel) submitForm() tea.Cmd {
	values := m.form.values()

	switch m.form.kind {
	case formAddTask:
		task, err := m.svc.Tasks.AddTask(m.ctx, service.TaskInput{
			Name:     values[0],
			Assigned: values[1],
			DueDate:  values[2],
			Priority: values[3],
		})
		if err != nil {
			m.fail(err)
			return nil
		}
		m.form = nil
		m.mode = modeBrowse
		m.succeed(fmt.Sprintf("Added %q for %s.", task.Name, task.Assigned))
		return nil

	case formSignIn:
		session, err := m.svc.Auth.SignIn(m.ctx, values[0], values[1])
		if err != nil {
			m.form.clearSecrets()
			m.fail(err)
			return nil
		}
		cmd := m.goTo(PageHome)
		m.succeed(fmt.Sprintf("Welcome back, %s.", session.DisplayName))
		return cmd

	case formSignUp:
		session, err := m.svc.Auth.Register(m.ctx, values[0], values[1], values[2])
		if err != nil {
			m.form.clearSecrets()
			m.fail(err)
			return nil
		}
		cmd := m.goTo(PageHome)
		m.succeed(fmt.Sprintf("Account created. Welcome, %s.", session.DisplayName))
		return cmd
	}
	return nil
}

func (m *tuiModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.search.Blur()
		return nil
	case "esc":
		m.search.SetValue("")
		m.mode = modeBrowse
		m.search.Blur()
		m.cursor = 0
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	return cmd
}

func (m *tuiModel) updateConfirm(msg tea.KeyMsg) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.mode = modeBrowse
		if err := m.svc.Scoring.Reset(m.ctx); err != nil {
			m.fail(err)
			return
		}
		m.fading = make(map[string]bool)
		m.cursor = 0
		m.succeed("Board reset. Everyone is back to 0 points.")
	case "n", "esc":
		m.mode = modeBrowse
		m.succeed("Reset cancelled.")
	}
}

// completeSelected marks the highlighted task done and schedules its
// removal after the grace delay.
func (m *tuiModel) completeSelected() tea.Cmd {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return nil
	}
	m.clampCursor()
	task := tasks[m.cursor]
	if m.fading[task.ID] {
		return nil
	}

	result, err := m.svc.Tasks.MarkDone(m.ctx, task.ID)
	if err != nil {
		m.fail(err)
		return nil
	}

	cmds := []tea.Cmd{m.scheduleRemoval(task.ID)}
	if result.Scored {
		m.succeed(fmt.Sprintf("Nice! +1 point for %s.", result.Task.Assigned))
		cmds = append(cmds, m.ping(result.Task.Assigned))
	}
	return tea.Batch(cmds...)
}

func (m *tuiModel) scheduleRemoval(id string) tea.Cmd {
	m.fading[id] = true
	return tea.Tick(m.svc.Tasks.GraceDelay(), func(time.Time) tea.Msg {
		return removeMsg{id: id}
	})
}

func (m *tuiModel) ping(participant string) tea.Cmd {
	m.pingSeq++
	m.pinged = participant
	seq := m.pingSeq
	return tea.Tick(pingDuration, func(time.Time) tea.Msg {
		return pingDoneMsg{seq: seq}
	})
}

func (m *tuiModel) signOut() {
	session := m.svc.Auth.CurrentSession()
	if err := m.svc.Auth.SignOut(m.ctx); err != nil {
		m.fail(err)
		return
	}
	if session == nil {
		m.succeed("You were not signed in.")
		return
	}
	m.succeed(fmt.Sprintf("Goodbye, %s.", session.DisplayName))
}

func (m *tuiModel) visibleTasks() []models.Task {
	return m.svc.Tasks.ListView(m.search.Value())
}

func (m *tuiModel) participants() []string {
	standings := m.svc.Scoring.Standings()
	out := make([]string, len(standings))
	for i, s := range standings {
		out[i] = s.Participant
	}
	return out
}

func (m *tuiModel) clampCursor() {
	n := m.svc.Tasks.Count(m.search.Value())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) succeed(msg string) {
	m.status = msg
	m.failed = false
}

func (m *tuiModel) failWith(msg string) {
	m.status = msg
	m.failed = true
}

func (m *tuiModel) fail(err error) {
	m.logger.Debug(m.ctx, "board action failed", zap.String("page", string(m.page)), zap.Error(err))
	m.failWith(describeError(err))
}

// describeError turns a service error into a status line.
func describeError(err error) string {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return "Please sign in first."
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, service.ErrAlreadyExists):
		return "An account with that email already exists."
	case errors.Is(err, service.ErrNotFound):
		return "That task no longer exists."
	case errors.Is(err, service.ErrPersistence):
		return "Could not save the board. Nothing was changed."
	case errors.Is(err, service.ErrInvalidInput):
		detail := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
		return strings.ToUpper(detail[:1]) + detail[1:] + "."
	}
	return err.Error()
}
