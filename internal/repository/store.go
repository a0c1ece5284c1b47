// internal/repository/store.go
package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/gurkanbulca/choreboard/internal/models"
)

// Store persists whole board snapshots. Load returns the default snapshot
// when nothing was saved or the saved state is unreadable; Save replaces the
// saved state atomically.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
}

var ErrSaveFailed = errors.New("save failed")

// MemoryStore keeps the snapshot in process. It is used by tests and
// ephemeral runs.
type MemoryStore struct {
	mu           sync.Mutex
	participants []string
	saved        *models.Snapshot
	saves        int
	failSaves    bool
}

func NewMemoryStore(participants []string) *MemoryStore {
	return &MemoryStore{participants: participants}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saved == nil {
		return models.DefaultSnapshot(s.participants), nil
	}
	return s.saved.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failSaves {
		return ErrSaveFailed
	}
	s.saved = snap.Clone()
	s.saves++
	return nil
}

// FailSaves makes subsequent saves fail until called with false.
func (s *MemoryStore) FailSaves(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSaves = fail
}

// Saves reports how many snapshots were written.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Saved returns a copy of the last written snapshot, or nil.
func (s *MemoryStore) Saved() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		return nil
	}
	return s.saved.Clone()
}

// fillDefaults repairs a decoded snapshot: missing records fall back to
// their defaults and tasks saved without an ID get one.
func fillDefaults(snap *models.Snapshot, participants []string, pointsPresent bool) {
	if snap.Tasks == nil {
		snap.Tasks = []models.Task{}
	}
	if !pointsPresent {
		snap.Points = models.NewScoreboard(participants...)
	}
	if snap.Users == nil {
		snap.Users = map[string]models.Account{}
	}
	for i := range snap.Tasks {
		if snap.Tasks[i].ID == "" {
			snap.Tasks[i].ID = uuid.NewString()
		}
	}
}
