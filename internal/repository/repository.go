package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// Repositories bundles every store the services depend on.
type Repositories struct {
	Staff     StaffRepository
	Clients   ClientRepository
	Campaigns CampaignRepository
	Contacts  ContactRepository
}

const (
	pgUniqueViolation     = "23505"
	pgInvalidTextEncoding = "22P02"
)

// mapPgError translates driver errors into repository sentinels.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgInvalidTextEncoding:
			// a malformed uuid cannot match any row
			return ErrNotFound
		}
	}
	return err
}

func normalizePage(limit, offset, defaultLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// NewPostgresRepositories wires every pgx-backed store onto one pool.
func NewPostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Staff:     NewStaffRepository(pool),
		Clients:   NewClientRepository(pool),
		Campaigns: NewCampaignRepository(pool),
		Contacts:  NewContactRepository(pool),
	}
}
