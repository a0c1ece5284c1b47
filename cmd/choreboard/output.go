package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/gurkanbulca/choreboard/internal/models"
	"github.com/gurkanbulca/choreboard/internal/service"
)

func printTasks(w io.Writer, tasks []models.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DONE\tTASK\tASSIGNED\tPRIORITY\tDUE")
	for _, t := range tasks {
		done := " "
		if t.Done {
			done = "x"
		}
		due := "No due date"
		if t.HasDueDate() {
			due = t.DueDate
		}
		fmt.Fprintf(tw, "[%s]\t%s\t%s\t%s\t%s\n", done, t.Name, t.Assigned, t.Priority, due)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d task(s)\n", len(tasks))
	return err
}

func printStandings(w io.Writer, scoring *service.ScoringService) error {
	leader, ok := scoring.Leader()
	if !ok {
		_, err := fmt.Fprintln(w, "Nobody is on the board yet.")
		return err
	}
	if leader.Points > 0 {
		fmt.Fprintf(w, "Leader: %s with %d point(s)\n\n", leader.Participant, leader.Points)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPARTICIPANT\tPOINTS")
	for i, s := range scoring.Standings() {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, s.Participant, s.Points)
	}
	return tw.Flush()
}
