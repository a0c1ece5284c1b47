// Package main implements the choreboard CLI: the interactive board plus a
// few read-only commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gurkanbulca/choreboard/internal/ui"
)

var (
	// version is set at build time with -ldflags "-X main.version=..."
	version = "dev"

	envFile   string
	ephemeral bool
	startPage string
	search    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "choreboard",
	Short: "Household chores with a points leaderboard",
	Long: `choreboard tracks household chores. Signed-in members add tasks and
complete them; every completed task earns its assignee one point.

Running choreboard without a command opens the interactive board.

Examples:
  # Open the board on the leaderboard page
  choreboard --page leaderboard

  # Try it out without touching the saved board
  choreboard --ephemeral

  # Print the task list
  choreboard tasks --search dish`,
	SilenceUsage: true,
	RunE:         runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive board",
	RunE:  runTUI,
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Print the task list",
	Long: `Print the tasks in board order: priority first, then due date (undated
last), then newest first.`,
	Args: cobra.NoArgs,
	RunE: runTasks,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the points standings",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "choreboard %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file (default .env if present)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the board in memory only")
	rootCmd.Flags().StringVar(&startPage, "page", "home", "start page: home, leaderboard, signin, signup or help")
	tuiCmd.Flags().StringVar(&startPage, "page", "home", "start page: home, leaderboard, signin, signup or help")
	tasksCmd.Flags().StringVar(&search, "search", "", "only show tasks whose name contains this text")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(versionCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	page, err := ui.ParsePage(startPage)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	return ui.RunTUI(cmd.Context(), a.services,
		ui.WithStartPage(page),
		ui.WithLogger(a.logger.Named("tui")))
}

func runTasks(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	return printTasks(cmd.OutOrStdout(), a.services.Tasks.ListView(search))
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	return printStandings(cmd.OutOrStdout(), a.services.Scoring)
}
