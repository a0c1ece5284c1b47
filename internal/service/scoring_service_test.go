package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/gurkanbulca/choreboard/internal/models"
)

func TestScoringService_Standings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signIn(t)

	for _, assigned := range []string{"CHAITRA", "SREE", "CHAITRA", "Guest"} {
		task := env.add(t, "chore", assigned, "", "")
		_, err := env.tasks.MarkDone(ctx, task.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, []models.Standing{
		{Participant: "CHAITRA", Points: 2},
		{Participant: "SREE", Points: 1},
		{Participant: "Guest", Points: 1},
		{Participant: "JYOTHI", Points: 0},
	}, env.scoring.Standings())

	leader, ok := env.scoring.Leader()
	require.True(t, ok)
	assert.Equal(t, "CHAITRA", leader.Participant)
}

func TestScoringService_StandingsTiesKeepInsertionOrder(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, []models.Standing{
		{Participant: "JYOTHI", Points: 0},
		{Participant: "CHAITRA", Points: 0},
		{Participant: "SREE", Points: 0},
	}, env.scoring.Standings())
}

func TestScoringService_LeaderEmpty(t *testing.T) {
	env := newTestEnv(t)
	board := NewBoard(env.store, nil)

	_, ok := NewScoringService(board).Leader()
	assert.False(t, ok)
}

func TestScoringService_Reset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signIn(t)

	task := env.add(t, "Mow lawn", "Guest", "", "")
	_, err := env.tasks.MarkDone(ctx, task.ID)
	require.NoError(t, err)
	env.add(t, "Dishes", "SREE", "", "")

	saves := env.store.Saves()
	require.NoError(t, env.scoring.Reset(ctx))
	assert.Equal(t, saves+1, env.store.Saves())

	snap := env.board.Snapshot()
	assert.Empty(t, snap.Tasks)
	assert.Equal(t, models.NewScoreboard(testParticipants...).Entries(), snap.Points.Entries())
	assert.NotNil(t, snap.CurrentUser, "reset keeps the session")
	assert.Contains(t, snap.Users, "ana@example.com")
	env.logger.AssertLogged(t, zapcore.WarnLevel, "Board reset")
}

func TestScoringService_ResetRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signIn(t)
	env.add(t, "Dishes", "SREE", "", "")
	require.NoError(t, env.auth.SignOut(ctx))

	err := env.scoring.Reset(ctx)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Len(t, env.board.Snapshot().Tasks, 1)
	env.logger.AssertLogged(t, zapcore.WarnLevel, "Rejected reset without a session")
}
