package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agate-ltd/agency-crm/internal/config"
	"github.com/agate-ltd/agency-crm/internal/repository"
	"github.com/agate-ltd/agency-crm/internal/repository/gormstore"
)

// Store is the record store selected by STORE_DRIVER.
type Store struct {
	Driver       string
	Repositories repository.Repositories
	Postgres     *Postgres
	SQLite       *SQLite
}

// OpenStore connects the configured backend, applying migrations when asked to.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		return NewSQLiteStore(cfg.Store.SQLitePath, logger)
	case config.StoreDriverPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.Pool, false, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return &Store{
			Driver:       config.StoreDriverPostgres,
			Repositories: repository.NewPostgresRepositories(pg.Pool),
			Postgres:     pg,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// NewSQLiteStore opens a gorm-backed store on the SQLite database at dsn.
func NewSQLiteStore(dsn string, logger *zap.Logger) (*Store, error) {
	lite, err := NewSQLite(dsn, logger)
	if err != nil {
		return nil, err
	}
	return &Store{
		Driver:       config.StoreDriverSQLite,
		Repositories: gormstore.New(lite.DB),
		SQLite:       lite,
	}, nil
}

// Ping checks the active backend.
func (s *Store) Ping(ctx context.Context) error {
	if s.SQLite != nil {
		return s.SQLite.Ping()
	}
	return s.Postgres.Ping(ctx)
}

// Close releases the active backend.
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.SQLite.Close()
	s.Postgres.Close()
}
