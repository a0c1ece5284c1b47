package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurkanbulca/choreboard/internal/models"
)

var testParticipants = []string{"JYOTHI", "CHAITRA", "SREE"}

func sampleSnapshot() *models.Snapshot {
	snap := models.DefaultSnapshot(testParticipants)
	snap.Tasks = []models.Task{
		{ID: "t-1", Name: "Dishes", Assigned: "JYOTHI", Priority: models.PriorityHigh, CreatedAt: 1_700_000_000_000},
		{ID: "t-2", Name: "Laundry", Assigned: "SREE", DueDate: "2025-01-01", Priority: models.PriorityLow, CreatedAt: 1_700_000_000_500, Done: true},
	}
	snap.Points.Add("SREE", 3)
	snap.Points.Add("GUEST", 1)
	snap.Users["ana@example.com"] = models.Account{DisplayName: "Ana", Password: "pw"}
	snap.Users["ben@example.com"] = models.Account{DisplayName: "Ben", Password: "secret"}
	snap.CurrentUser = &models.Session{Email: "ana@example.com", DisplayName: "Ana"}
	return snap
}

// assertSnapshotEqual compares snapshots field by field.
func assertSnapshotEqual(t *testing.T, want, got *models.Snapshot) {
	t.Helper()
	assert.Equal(t, want.Tasks, got.Tasks)
	assert.Equal(t, want.Points.Entries(), got.Points.Entries())
	assert.Equal(t, want.Users, got.Users)
	assert.Equal(t, want.CurrentUser, got.CurrentUser)
}

func TestMemoryStore_LoadDefaults(t *testing.T) {
	store := NewMemoryStore(testParticipants)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assertSnapshotEqual(t, models.DefaultSnapshot(testParticipants), snap)
	assert.Nil(t, store.Saved())
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testParticipants)
	want := sampleSnapshot()

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertSnapshotEqual(t, want, got)
	assert.Equal(t, 1, store.Saves())

	// The store keeps its own copy.
	want.Tasks[0].Name = "changed"
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dishes", again.Tasks[0].Name)
}

func TestMemoryStore_FailSaves(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(testParticipants)
	store.FailSaves(true)

	err := store.Save(ctx, sampleSnapshot())
	require.ErrorIs(t, err, ErrSaveFailed)
	assert.Equal(t, 0, store.Saves())

	store.FailSaves(false)
	require.NoError(t, store.Save(ctx, sampleSnapshot()))
	assert.Equal(t, 1, store.Saves())
}

func TestFillDefaults(t *testing.T) {
	snap := &models.Snapshot{
		Tasks: []models.Task{{Name: "legacy", Assigned: "SREE", Priority: models.PriorityLow}},
	}
	fillDefaults(snap, testParticipants, false)

	require.Len(t, snap.Tasks, 1)
	assert.NotEmpty(t, snap.Tasks[0].ID)
	assert.NotNil(t, snap.Users)
	assert.Equal(t, models.NewScoreboard(testParticipants...).Entries(), snap.Points.Entries())
}
