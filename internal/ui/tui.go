// Package ui provides the interactive terminal board.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gurkanbulca/choreboard/internal/logging"
	"github.com/gurkanbulca/choreboard/internal/service"
)

// Page is a screen of the board, addressed by name.
type Page string

const (
	PageHome        Page = "home"
	PageLeaderboard Page = "leaderboard"
	PageSignIn      Page = "signin"
	PageSignUp      Page = "signup"
	PageHelp        Page = "help"
)

// tabs are the pages shown in the navigation bar, in order.
var tabs = []struct {
	page  Page
	key   string
	title string
}{
	{PageHome, "1", "Tasks"},
	{PageLeaderboard, "2", "Leaderboard"},
	{PageSignIn, "3", "Sign in"},
	{PageSignUp, "4", "Sign up"},
}

// ParsePage resolves a page name. Empty means home.
func ParsePage(name string) (Page, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "home", "tasks":
		return PageHome, nil
	case "leaderboard", "scores":
		return PageLeaderboard, nil
	case "signin", "sign-in", "login":
		return PageSignIn, nil
	case "signup", "sign-up", "register":
		return PageSignUp, nil
	case "help":
		return PageHelp, nil
	default:
		return "", fmt.Errorf("unknown page %q (want home, leaderboard, signin, signup or help)", name)
	}
}

// Services are the board operations the TUI drives.
type Services struct {
	Auth    *service.AuthService
	Tasks   *service.TaskService
	Scoring *service.ScoringService
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	startPage Page
	logger    *logging.Logger
}

// WithStartPage opens the TUI on the given page.
func WithStartPage(page Page) TUIOption {
	return func(c *tuiConfig) {
		c.startPage = page
	}
}

// WithLogger sets the logger for failed actions. Logs must not go to the
// terminal the TUI draws on.
func WithLogger(logger *logging.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

func newTUIConfig(opts ...TUIOption) *tuiConfig {
	c := &tuiConfig{
		startPage: PageHome,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunTUI runs the board until the user quits or ctx is cancelled.
func RunTUI(ctx context.Context, svc Services, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newModel(ctx, svc, newTUIConfig(opts...))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
