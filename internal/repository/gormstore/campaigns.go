package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/repository"
)

type campaignRepository struct {
	db *gorm.DB
}

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	row := campaignRow{
		ClientID:         campaign.ClientID,
		Title:            campaign.Title,
		PlannedStartDate: campaign.PlannedStartDate,
		PlannedEndDate:   campaign.PlannedEndDate,
		EstimatedCost:    campaign.EstimatedCost,
		Budget:           campaign.Budget,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError(err)
	}
	campaign.ID = row.ID
	campaign.CreatedAt = row.CreatedAt
	campaign.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&campaignRow{}).Where("id = ?", campaign.ID).Updates(map[string]any{
		"client_id":          campaign.ClientID,
		"title":              campaign.Title,
		"planned_start_date": campaign.PlannedStartDate,
		"planned_end_date":   campaign.PlannedEndDate,
		"estimated_cost":     campaign.EstimatedCost,
		"budget":             campaign.Budget,
		"updated_at":         now,
	})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	campaign.UpdatedAt = now
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var row campaignRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *campaignRepository) List(ctx context.Context, filter repository.CampaignFilter) ([]domain.Campaign, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	var rows []campaignRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	result := make([]domain.Campaign, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row.toDomain())
	}
	return result, nil
}

func (r *campaignRepository) CountByClient(ctx context.Context) (map[string]int, error) {
	var totals []struct {
		ClientID string
		Total    int
	}
	err := r.db.WithContext(ctx).Model(&campaignRow{}).
		Select("client_id, COUNT(*) AS total").
		Group("client_id").
		Scan(&totals).Error
	if err != nil {
		return nil, mapError(err)
	}
	counts := make(map[string]int, len(totals))
	for _, t := range totals {
		counts[t.ClientID] = t.Total
	}
	return counts, nil
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&campaignRow{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *campaignRepository) DeleteByClient(ctx context.Context, clientID string) (int, error) {
	res := r.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&campaignRow{})
	if res.Error != nil {
		return 0, mapError(res.Error)
	}
	return int(res.RowsAffected), nil
}
