// internal/service/board.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gurkanbulca/choreboard/internal/logging"
	"github.com/gurkanbulca/choreboard/internal/models"
	"github.com/gurkanbulca/choreboard/internal/repository"
)

// Board owns the tasks, points, accounts and session of one household and
// writes the whole state through its store after every mutation. Operations
// are serialized.
type Board struct {
	mu           sync.Mutex
	state        *models.Snapshot
	store        repository.Store
	participants []string
	now          func() time.Time
	newID        func() string
	logger       *logging.Logger
	security     *SecurityLogger
}

type Option func(*Board)

func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(b *Board) { b.newID = newID }
}

func WithLogger(logger *logging.Logger) Option {
	return func(b *Board) { b.logger = logger }
}

// NewBoard starts from the default state; call Open to load the saved one.
func NewBoard(store repository.Store, participants []string, opts ...Option) *Board {
	b := &Board{
		state:        models.DefaultSnapshot(participants),
		store:        store,
		participants: append([]string(nil), participants...),
		now:          time.Now,
		newID:        uuid.NewString,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.security = NewSecurityLogger(b.logger)
	return b
}

// Open loads the saved state. It is called once at startup.
func (b *Board) Open(ctx context.Context) error {
	snap, err := b.store.Load(logging.WithOperation(ctx, "load"))
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	b.mu.Lock()
	b.state = snap
	b.mu.Unlock()

	b.logger.Info(ctx, "board loaded",
		zap.Int("tasks", len(snap.Tasks)),
		zap.Int("accounts", len(snap.Users)),
		zap.Bool("signed_in", snap.CurrentUser != nil))
	return nil
}

// Participants is the fixed set the scores reset to.
func (b *Board) Participants() []string {
	return append([]string(nil), b.participants...)
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() *models.Snapshot {
	var out *models.Snapshot
	b.read(func(s *models.Snapshot) { out = s.Clone() })
	return out
}

func (b *Board) read(fn func(s *models.Snapshot)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b.state)
}

// commit applies mutate to a copy of the state and saves it. The copy only
// replaces the current state once the save succeeded. A mutate error aborts
// without saving; errUnchanged aborts without saving and is not reported.
func (b *Board) commit(ctx context.Context, op string, mutate func(next *models.Snapshot) error) error {
	ctx = logging.WithOperation(ctx, op)

	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.state.Clone()
	if err := mutate(next); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		if errors.Is(err, ErrNotAuthenticated) {
			b.security.LogUnauthenticatedUse(ctx, op)
		}
		return err
	}

	if err := b.store.Save(ctx, next); err != nil {
		b.logger.Error(ctx, "save board", zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
	}
	b.state = next
	return nil
}

func (b *Board) nowMillis() int64 {
	return b.now().UnixMilli()
}

func requireSession(s *models.Snapshot) error {
	if s.CurrentUser == nil {
		return ErrNotAuthenticated
	}
	return nil
}
