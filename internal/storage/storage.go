// Package storage opens the conversation store selected by storage.driver.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github-agent/config"
	"github-agent/config/postgre"
	"github-agent/config/sqlite"
	"github-agent/internal/conversation/repository"
	pgRepo "github-agent/internal/conversation/repository/postgre"
	sqliteRepo "github-agent/internal/conversation/repository/sqlite"
	"github-agent/pkg/log"
)

// Store is an open conversation store.
type Store struct {
	DB     *sql.DB
	Repo   repository.Repository
	driver string
}

// Open connects the configured backend and makes sure its tables exist.
func Open(ctx context.Context, cfg *config.Config, l log.Logger) (*Store, error) {
	repoCfg := repository.Config{QueryTimeout: cfg.Storage.QueryTimeout}
	var (
		db   *sql.DB
		repo repository.Repository
		err  error
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		db, err = sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		repo = sqliteRepo.New(db, l, repoCfg)
		l.Infof(ctx, "Conversation store: sqlite at %s", cfg.SQLite.Path)
	case config.StorageDriverPostgres:
		db, err = postgre.Connect(ctx, cfg.Postgre)
		if err != nil {
			return nil, err
		}
		repo = pgRepo.New(db, l, repoCfg)
		l.Infof(ctx, "Conversation store: postgres at %s:%d/%s", cfg.Postgre.Host, cfg.Postgre.Port, cfg.Postgre.DBName)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{DB: db, Repo: repo, driver: cfg.Storage.Driver}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s.driver == config.StorageDriverPostgres {
		return postgre.Disconnect(s.DB)
	}
	return s.DB.Close()
}
