// internal/service/scoring_service.go
package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/gurkanbulca/choreboard/internal/models"
)

type ScoringService struct {
	board          *Board
	securityLogger *SecurityLogger
}

func NewScoringService(board *Board) *ScoringService {
	return &ScoringService{
		board:          board,
		securityLogger: board.security,
	}
}

// award adds one point, creating the participant at 0 if unseen.
func award(points *models.Scoreboard, participant string) {
	points.Add(participant, 1)
}

// Standings lists participants by points, highest first. Ties keep the
// scoreboard's insertion order.
func (s *ScoringService) Standings() []models.Standing {
	var out []models.Standing
	s.board.read(func(snap *models.Snapshot) {
		out = snap.Points.Entries()
	})
	slices.SortStableFunc(out, func(a, b models.Standing) int {
		return cmp.Compare(b.Points, a.Points)
	})
	return out
}

// Leader is the first standing, if any.
func (s *ScoringService) Leader() (models.Standing, bool) {
	standings := s.Standings()
	if len(standings) == 0 {
		return models.Standing{}, false
	}
	return standings[0], true
}

// Reset restores the fixed participants at zero points and clears every task.
func (s *ScoringService) Reset(ctx context.Context) error {
	var email string
	err := s.board.commit(ctx, "reset", func(next *models.Snapshot) error {
		if err := requireSession(next); err != nil {
			return err
		}
		email = next.CurrentUser.Email
		next.Points = models.NewScoreboard(s.board.participants...)
		next.Tasks = []models.Task{}
		return nil
	})
	if err != nil {
		return err
	}

	s.securityLogger.LogBoardReset(ctx, email)
	return nil
}
