// internal/service/task_service.go
package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gurkanbulca/choreboard/internal/models"
)

// TaskInput carries the fields of a new task as typed by the user.
type TaskInput struct {
	Name     string
	Assigned string
	DueDate  string // "" or YYYY-MM-DD
	Priority string // High, Medium or Low; empty means Medium
}

// MarkResult reports the completed task and whether this call scored it.
type MarkResult struct {
	Task   models.Task
	Scored bool
}

type TaskService struct {
	board     *Board
	scheduler RemovalScheduler
	grace     time.Duration
}

func NewTaskService(board *Board, scheduler RemovalScheduler, grace time.Duration) *TaskService {
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	return &TaskService{
		board:     board,
		scheduler: scheduler,
		grace:     grace,
	}
}

// GraceDelay is how long a completed task stays listed before removal.
func (s *TaskService) GraceDelay() time.Duration {
	return s.grace
}

// AddTask appends a task to the ledger.
func (s *TaskService) AddTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	var added models.Task
	err := s.board.commit(ctx, "add_task", func(next *models.Snapshot) error {
		if err := requireSession(next); err != nil {
			return err
		}

		task, err := s.newTask(in)
		if err != nil {
			return err
		}
		next.Tasks = append(next.Tasks, task)
		added = task
		return nil
	})
	if err != nil {
		s.board.logger.Debug(ctx, "add task rejected", zap.Error(err))
		return nil, err
	}

	s.board.logger.Info(ctx, "task added",
		zap.String("task_id", added.ID),
		zap.String("assigned", added.Assigned),
		zap.String("priority", string(added.Priority)))
	return &added, nil
}

func (s *TaskService) newTask(in TaskInput) (models.Task, error) {
	name := strings.TrimSpace(in.Name)
	assigned := strings.TrimSpace(in.Assigned)
	if name == "" || assigned == "" {
		return models.Task{}, fmt.Errorf("%w: task name and assignee are required", ErrInvalidInput)
	}

	priority, err := models.ParsePriority(in.Priority)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	due := strings.TrimSpace(in.DueDate)
	if err := models.ValidateDueDate(due); err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return models.Task{
		ID:        s.board.newID(),
		Name:      name,
		Assigned:  assigned,
		DueDate:   due,
		Priority:  priority,
		CreatedAt: s.board.nowMillis(),
		Done:      false,
	}, nil
}

// ListView returns the tasks whose name contains search (any case), in
// ledger view order. It does not modify the board.
func (s *TaskService) ListView(search string) []models.Task {
	needle := strings.ToLower(search)

	var out []models.Task
	s.board.read(func(snap *models.Snapshot) {
		out = make([]models.Task, 0, len(snap.Tasks))
		for _, t := range snap.Tasks {
			if strings.Contains(strings.ToLower(t.Name), needle) {
				out = append(out, t)
			}
		}
	})

	slices.SortStableFunc(out, models.CompareTasks)
	return out
}

// Count is the number of tasks ListView(search) returns.
func (s *TaskService) Count(search string) int {
	return len(s.ListView(search))
}

// MarkDone completes a task and awards its assignee a point. A task that is
// already done is left alone and scores nothing.
func (s *TaskService) MarkDone(ctx context.Context, id string) (MarkResult, error) {
	var result MarkResult
	err := s.board.commit(ctx, "mark_done", func(next *models.Snapshot) error {
		if err := requireSession(next); err != nil {
			return err
		}

		i := next.TaskIndex(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		task := &next.Tasks[i]
		if task.Done {
			result = MarkResult{Task: *task}
			return errUnchanged
		}

		task.Done = true
		award(&next.Points, task.Assigned)
		result = MarkResult{Task: *task, Scored: true}
		return nil
	})
	if err != nil {
		return MarkResult{}, err
	}

	if result.Scored {
		s.board.logger.Info(ctx, "task completed",
			zap.String("task_id", id),
			zap.String("assigned", result.Task.Assigned))
	}
	return result, nil
}

// FinalizeRemoval drops a completed task from the ledger. Unknown and
// not-yet-done tasks are ignored, so repeated calls are harmless. No session
// is needed: a removal scheduled before sign-out still happens.
func (s *TaskService) FinalizeRemoval(ctx context.Context, id string) error {
	removed := false
	err := s.board.commit(ctx, "finalize_removal", func(next *models.Snapshot) error {
		i := next.TaskIndex(id)
		if i < 0 || !next.Tasks[i].Done {
			return errUnchanged
		}
		next.Tasks = slices.Delete(next.Tasks, i, i+1)
		removed = true
		return nil
	})
	if err != nil {
		return err
	}

	if removed {
		s.board.logger.Debug(ctx, "completed task removed", zap.String("task_id", id))
	}
	return nil
}

// CompleteTask marks the task done and schedules its removal after the
// grace delay.
func (s *TaskService) CompleteTask(ctx context.Context, id string) (MarkResult, error) {
	result, err := s.MarkDone(ctx, id)
	if err != nil {
		return MarkResult{}, err
	}

	removalCtx := context.WithoutCancel(ctx)
	s.scheduler.Schedule(s.grace, func() {
		if err := s.FinalizeRemoval(removalCtx, id); err != nil {
			s.board.logger.Error(removalCtx, "remove completed task", zap.String("task_id", id), zap.Error(err))
		}
	})
	return result, nil
}
