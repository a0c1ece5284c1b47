package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/gurkanbulca/choreboard/internal/logging"
	"github.com/gurkanbulca/choreboard/internal/models"
)

func newTestFileStore(t *testing.T) (*FileStore, *logging.TestLogger) {
	t.Helper()
	logger := logging.NewTestLogger()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "state", "board.json"), testParticipants, logger.Logger)
	require.NoError(t, err)
	return store, logger
}

func TestNewFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("", testParticipants, logging.NewNop())
	assert.Error(t, err)
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store, _ := newTestFileStore(t)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assertSnapshotEqual(t, models.DefaultSnapshot(testParticipants), snap)
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestFileStore(t)
	want := sampleSnapshot()

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertSnapshotEqual(t, want, got)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "board.json", entries[0].Name())
}

func TestFileStore_SaveReplacesWholeDocument(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestFileStore(t)

	require.NoError(t, store.Save(ctx, sampleSnapshot()))
	empty := models.DefaultSnapshot(testParticipants)
	require.NoError(t, store.Save(ctx, empty))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assertSnapshotEqual(t, empty, got)
}

func TestFileStore_CorruptDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "not json", content: "{tasks: oops"},
		{name: "wrong top-level type", content: `[1, 2, 3]`},
		{name: "unknown priority", content: `{"tasks":[{"id":"x","name":"a","assigned":"SREE","priority":"Urgent"}]}`},
		{name: "negative points", content: `{"points":{"SREE":-1}}`},
		{name: "bad due date", content: `{"tasks":[{"name":"a","assigned":"SREE","priority":"Low","dueDate":"tomorrow"}]}`},
		{name: "session missing email", content: `{"currentUser":{"displayName":"Ana"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, logger := newTestFileStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
			require.NoError(t, os.WriteFile(store.Path(), []byte(tt.content), 0o600))

			snap, err := store.Load(context.Background())
			require.NoError(t, err)
			assertSnapshotEqual(t, models.DefaultSnapshot(testParticipants), snap)
			logger.AssertLogged(t, zapcore.WarnLevel, "corrupt")
		})
	}
}

func TestFileStore_PartialDocument(t *testing.T) {
	store, _ := newTestFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	content := `{
  "tasks": [{"name": "Sweep", "assigned": "CHAITRA", "priority": "Medium", "dueDate": "", "createdAt": 5, "done": false}],
  "users": {"ana@example.com": {"displayName": "Ana", "password": "pw"}}
}`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o600))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Tasks, 1)
	assert.NotEmpty(t, snap.Tasks[0].ID, "legacy tasks get an id")
	assert.Equal(t, "Sweep", snap.Tasks[0].Name)
	assert.Equal(t, models.NewScoreboard(testParticipants...).Entries(), snap.Points.Entries())
	assert.Equal(t, "Ana", snap.Users["ana@example.com"].DisplayName)
	assert.Nil(t, snap.CurrentUser)
}

func TestFileStore_PointsKeyOrderPreserved(t *testing.T) {
	store, _ := newTestFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"points":{"SREE":2,"JYOTHI":2,"CHAITRA":0}}`), 0o600))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Standing{
		{Participant: "SREE", Points: 2},
		{Participant: "JYOTHI", Points: 2},
		{Participant: "CHAITRA", Points: 0},
	}, snap.Points.Entries())
}

func TestFileStore_LoadUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}
	store, _ := newTestFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{}`), 0o000))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}
