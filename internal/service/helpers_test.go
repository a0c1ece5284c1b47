package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/choreboard/internal/logging"
	"github.com/gurkanbulca/choreboard/internal/models"
	"github.com/gurkanbulca/choreboard/internal/repository"
	"github.com/gurkanbulca/choreboard/pkg/auth"
)

var testParticipants = []string{"JYOTHI", "CHAITRA", "SREE"}

// fakeClock advances one millisecond per reading.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

// recordingScheduler keeps scheduled removals until the test runs them.
type recordingScheduler struct {
	delays  []time.Duration
	pending []func()
}

func (r *recordingScheduler) Schedule(delay time.Duration, fn func()) {
	r.delays = append(r.delays, delay)
	r.pending = append(r.pending, fn)
}

func (r *recordingScheduler) runAll() {
	pending := r.pending
	r.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type testEnv struct {
	store     *repository.MemoryStore
	logger    *logging.TestLogger
	board     *Board
	auth      *AuthService
	tasks     *TaskService
	scoring   *ScoringService
	scheduler *recordingScheduler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repository.NewMemoryStore(testParticipants)
	logger := logging.NewTestLogger()
	clock := &fakeClock{t: time.UnixMilli(1_700_000_000_000)}
	ids := 0
	board := NewBoard(store, testParticipants,
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("task-%d", ids)
		}),
		WithLogger(logger.Logger),
	)
	require.NoError(t, board.Open(context.Background()))

	scheduler := &recordingScheduler{}
	return &testEnv{
		store:     store,
		logger:    logger,
		board:     board,
		auth:      NewAuthService(board, auth.PlainVerifier{}),
		tasks:     NewTaskService(board, scheduler, 450*time.Millisecond),
		scoring:   NewScoringService(board),
		scheduler: scheduler,
	}
}

func (e *testEnv) signIn(t *testing.T) {
	t.Helper()
	_, err := e.auth.Register(context.Background(), "Ana", "ana@example.com", "pw")
	require.NoError(t, err)
}

func (e *testEnv) add(t *testing.T, name, assigned, due, priority string) *models.Task {
	t.Helper()
	task, err := e.tasks.AddTask(context.Background(), TaskInput{
		Name:     name,
		Assigned: assigned,
		DueDate:  due,
		Priority: priority,
	})
	require.NoError(t, err)
	return task
}

func taskNames(tasks []models.Task) []string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name
	}
	return names
}

func points(t *testing.T, e *testEnv, participant string) int {
	t.Helper()
	p, _ := e.board.Snapshot().Points.Get(participant)
	return p
}
