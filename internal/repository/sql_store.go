// internal/repository/sql_store.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/gurkanbulca/choreboard/internal/logging"
	"github.com/gurkanbulca/choreboard/internal/models"
)

// sessionRowID is the only row of the sessions table.
const sessionRowID = 1

type taskRow struct {
	ID        string `db:"id"`
	Seq       int    `db:"seq"`
	Name      string `db:"name"`
	Assigned  string `db:"assigned"`
	DueDate   string `db:"due_date"`
	Priority  string `db:"priority"`
	CreatedAt int64  `db:"created_at"`
	Done      bool   `db:"done"`
}

type pointsRow struct {
	Participant string `db:"participant"`
	Seq         int    `db:"seq"`
	Points      int    `db:"points"`
}

type accountRow struct {
	Email       string `db:"email"`
	DisplayName string `db:"display_name"`
	Password    string `db:"password"`
}

type sessionRow struct {
	ID          int    `db:"id"`
	Email       string `db:"email"`
	DisplayName string `db:"display_name"`
}

// SQLStore keeps the snapshot in the tables created by database.Migrate.
type SQLStore struct {
	db           *sqlx.DB
	participants []string
	logger       *logging.Logger
}

func NewSQLStore(db *sqlx.DB, participants []string, logger *logging.Logger) *SQLStore {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SQLStore{
		db:           db,
		participants: participants,
		logger:       logger,
	}
}

func (s *SQLStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var tasks []taskRow
	if err := s.db.SelectContext(ctx, &tasks,
		`SELECT id, seq, name, assigned, due_date, priority, created_at, done FROM tasks ORDER BY seq`); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	var points []pointsRow
	if err := s.db.SelectContext(ctx, &points,
		`SELECT participant, seq, points FROM points ORDER BY seq`); err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}

	var accounts []accountRow
	if err := s.db.SelectContext(ctx, &accounts,
		`SELECT email, display_name, password FROM accounts`); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	var session sessionRow
	err := s.db.GetContext(ctx, &session,
		s.db.Rebind(`SELECT id, email, display_name FROM sessions WHERE id = ?`), sessionRowID)
	hasSession := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load session: %w", err)
	}

	snap := &models.Snapshot{
		Tasks:  make([]models.Task, 0, len(tasks)),
		Points: models.NewScoreboard(),
		Users:  make(map[string]models.Account, len(accounts)),
	}
	for _, row := range tasks {
		snap.Tasks = append(snap.Tasks, models.Task{
			ID:        row.ID,
			Name:      row.Name,
			Assigned:  row.Assigned,
			DueDate:   row.DueDate,
			Priority:  models.Priority(row.Priority),
			CreatedAt: row.CreatedAt,
			Done:      row.Done,
		})
	}
	for _, row := range points {
		snap.Points.Set(row.Participant, row.Points)
	}
	for _, row := range accounts {
		snap.Users[row.Email] = models.Account{DisplayName: row.DisplayName, Password: row.Password}
	}
	if hasSession {
		snap.CurrentUser = &models.Session{Email: session.Email, DisplayName: session.DisplayName}
	}

	// An empty points table means nothing was saved yet.
	fillDefaults(snap, s.participants, len(points) > 0)
	return snap, nil
}

// Save rewrites every table inside one transaction.
func (s *SQLStore) Save(ctx context.Context, snap *models.Snapshot) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error(ctx, "rollback snapshot", zap.Error(rbErr))
			}
		}
	}()

	for _, table := range []string{"tasks", "points", "accounts", "sessions"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, t := range snap.Tasks {
		row := taskRow{
			ID:        t.ID,
			Seq:       i,
			Name:      t.Name,
			Assigned:  t.Assigned,
			DueDate:   t.DueDate,
			Priority:  string(t.Priority),
			CreatedAt: t.CreatedAt,
			Done:      t.Done,
		}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO tasks (id, seq, name, assigned, due_date, priority, created_at, done)
			 VALUES (:id, :seq, :name, :assigned, :due_date, :priority, :created_at, :done)`, row); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	for i, standing := range snap.Points.Entries() {
		row := pointsRow{Participant: standing.Participant, Seq: i, Points: standing.Points}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO points (participant, seq, points) VALUES (:participant, :seq, :points)`, row); err != nil {
			return fmt.Errorf("insert points for %s: %w", standing.Participant, err)
		}
	}

	emails := make([]string, 0, len(snap.Users))
	for email := range snap.Users {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	for _, email := range emails {
		account := snap.Users[email]
		row := accountRow{Email: email, DisplayName: account.DisplayName, Password: account.Password}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO accounts (email, display_name, password) VALUES (:email, :display_name, :password)`, row); err != nil {
			return fmt.Errorf("insert account %s: %w", email, err)
		}
	}

	if snap.CurrentUser != nil {
		row := sessionRow{ID: sessionRowID, Email: snap.CurrentUser.Email, DisplayName: snap.CurrentUser.DisplayName}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO sessions (id, email, display_name) VALUES (:id, :email, :display_name)`, row); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
