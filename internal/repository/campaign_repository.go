package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

// CampaignRepository persists campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	Update(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error)
	CountByClient(ctx context.Context) (map[string]int, error)
	Delete(ctx context.Context, id string) error
	DeleteByClient(ctx context.Context, clientID string) (int, error)
}

// CampaignFilter narrows campaign listings.
type CampaignFilter struct {
	ClientID *string
}

type campaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a Postgres-backed implementation.
func NewCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &campaignRepository{pool: pool}
}

const campaignColumns = `id, client_id, title, planned_start_date, planned_end_date, estimated_cost, budget, created_at, updated_at`

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	const query = `
        INSERT INTO campaigns (client_id, title, planned_start_date, planned_end_date, estimated_cost, budget)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		campaign.ClientID,
		campaign.Title,
		campaign.PlannedStartDate,
		campaign.PlannedEndDate,
		campaign.EstimatedCost,
		campaign.Budget,
	).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)
	return mapPgError(err)
}

func (r *campaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	const query = `
        UPDATE campaigns
        SET client_id=$1, title=$2, planned_start_date=$3, planned_end_date=$4, estimated_cost=$5, budget=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		campaign.ClientID,
		campaign.Title,
		campaign.PlannedStartDate,
		campaign.PlannedEndDate,
		campaign.EstimatedCost,
		campaign.Budget,
		campaign.ID,
	).Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
	return mapPgError(err)
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id=$1`, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return campaign, nil
}

func (r *campaignRepository) List(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := []any{}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		query += ` WHERE client_id=$1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var result []domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *campaign)
	}
	return result, rows.Err()
}

func (r *campaignRepository) CountByClient(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT client_id, COUNT(*) FROM campaigns GROUP BY client_id`)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			clientID string
			count    int
		)
		if err := rows.Scan(&clientID, &count); err != nil {
			return nil, err
		}
		counts[clientID] = count
	}
	return counts, rows.Err()
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *campaignRepository) DeleteByClient(ctx context.Context, clientID string) (int, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE client_id=$1`, clientID)
	if err != nil {
		return 0, mapPgError(err)
	}
	return int(cmd.RowsAffected()), nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := row.Scan(
		&campaign.ID,
		&campaign.ClientID,
		&campaign.Title,
		&campaign.PlannedStartDate,
		&campaign.PlannedEndDate,
		&campaign.EstimatedCost,
		&campaign.Budget,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &campaign, nil
}
