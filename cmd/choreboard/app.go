package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gurkanbulca/choreboard/internal/config"
	"github.com/gurkanbulca/choreboard/internal/database"
	"github.com/gurkanbulca/choreboard/internal/logging"
	"github.com/gurkanbulca/choreboard/internal/repository"
	"github.com/gurkanbulca/choreboard/internal/service"
	"github.com/gurkanbulca/choreboard/internal/ui"
	"github.com/gurkanbulca/choreboard/pkg/auth"
)

// app is one opened board with its services.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	db       *sqlx.DB
	services ui.Services
}

func newApp(ctx context.Context) (*app, error) {
	if err := loadEnv(envFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if ephemeral {
		cfg.Store.Driver = config.StoreMemory
	}
	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger}

	store, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	verifier, err := auth.NewVerifier(cfg.Auth.CredentialScheme, cfg.Auth.BcryptCost)
	if err != nil {
		a.Close()
		return nil, err
	}

	board := service.NewBoard(store, cfg.Board.Participants, service.WithLogger(logger))
	if err := board.Open(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.services = ui.Services{
		Auth:    service.NewAuthService(board, verifier),
		Tasks:   service.NewTaskService(board, service.TimerScheduler{}, cfg.Board.GraceDelay),
		Scoring: service.NewScoringService(board),
	}
	return a, nil
}

// loadEnv reads an env file. Without an explicit path a missing .env is fine.
func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	lcfg := logging.NewDefaultConfig()
	lcfg.Level = level
	lcfg.Format = cfg.Log.Format
	lcfg.Path = cfg.Log.File
	lcfg.Fields["environment"] = cfg.Environment

	logger, err := logging.NewLogger(lcfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

func (a *app) openStore(ctx context.Context) (repository.Store, error) {
	participants := a.cfg.Board.Participants

	switch a.cfg.Store.Driver {
	case config.StoreMemory:
		return repository.NewMemoryStore(participants), nil

	case config.StoreFile:
		store, err := repository.NewFileStore(a.cfg.Store.StateFile, participants, a.logger.Named("store"))
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.StoreSQLite, config.StorePostgres:
		db, err := database.Open(ctx, database.Config{
			Driver: a.cfg.Store.Driver,
			DSN:    a.cfg.DatabaseDSN(),
		})
		if err != nil {
			return nil, err
		}
		a.db = db

		if a.cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				return nil, err
			}
			a.logger.Debug(ctx, "schema migrated", zap.String("driver", a.cfg.Store.Driver))
		}
		return repository.NewSQLStore(db, participants, a.logger.Named("store")), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
}

// Close releases the database and flushes the log.
func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
