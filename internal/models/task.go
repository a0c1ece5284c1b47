package models

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

type Priority string

// Priority levels, in the order tasks are listed.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

const (
	// DueDateLayout is the calendar date format of Task.DueDate.
	DueDateLayout = "2006-01-02"

	// NoDueDate stands in for a missing due date when ordering tasks.
	NoDueDate = "9999-12-31"
)

// ParsePriority accepts any casing. An empty value means Medium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium", "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

// Rank orders priorities: High(0) < Medium(1) < Low(2). Unknown values rank last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ValidateDueDate accepts "" or a YYYY-MM-DD calendar date.
func ValidateDueDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DueDateLayout, s); err != nil {
		return fmt.Errorf("due date %q is not a YYYY-MM-DD date", s)
	}
	return nil
}

type Task struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Assigned  string   `json:"assigned"`
	DueDate   string   `json:"dueDate"`
	Priority  Priority `json:"priority"`
	CreatedAt int64    `json:"createdAt"` // unix milliseconds
	Done      bool     `json:"done"`
}

func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

func (t Task) sortDueDate() string {
	if t.DueDate == "" {
		return NoDueDate
	}
	return t.DueDate
}

// CompareTasks is the ledger view order: priority rank ascending, then due
// date ascending with undated tasks last, then newest first.
func CompareTasks(a, b Task) int {
	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	if c := strings.Compare(a.sortDueDate(), b.sortDueDate()); c != 0 {
		return c
	}
	return cmp.Compare(b.CreatedAt, a.CreatedAt)
}
