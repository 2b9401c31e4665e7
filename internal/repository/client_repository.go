package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

// ClientRepository persists agency clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]domain.Client, error)
	Delete(ctx context.Context, id string) error
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a Postgres-backed implementation.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

const clientColumns = `id, name, surname, email, address, company_name, contact_person_details, created_at, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (name, surname, email, address, company_name, contact_person_details)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		client.Name,
		client.Surname,
		client.Email,
		client.Address,
		client.CompanyName,
		client.ContactPersonDetails,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
	return mapPgError(err)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	const query = `
        UPDATE clients
        SET name=$1, surname=$2, email=$3, address=$4, company_name=$5, contact_person_details=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		client.Name,
		client.Surname,
		client.Email,
		client.Address,
		client.CompanyName,
		client.ContactPersonDetails,
		client.ID,
	).Scan(&client.CreatedAt, &client.UpdatedAt)
	return mapPgError(err)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	client, err := scanClient(r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return client, nil
}

func (r *clientRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id=$1)`, id).Scan(&exists)
	if err = mapPgError(err); err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var result []domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *client)
	}
	return result, rows.Err()
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var client domain.Client
	if err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Surname,
		&client.Email,
		&client.Address,
		&client.CompanyName,
		&client.ContactPersonDetails,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}
