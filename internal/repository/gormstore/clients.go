package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/repository"
)

type clientRepository struct {
	db *gorm.DB
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	row := clientRow{
		Name:                 client.Name,
		Surname:              client.Surname,
		Email:                client.Email,
		Address:              client.Address,
		CompanyName:          client.CompanyName,
		ContactPersonDetails: client.ContactPersonDetails,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError(err)
	}
	client.ID = row.ID
	client.CreatedAt = row.CreatedAt
	client.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&clientRow{}).Where("id = ?", client.ID).Updates(map[string]any{
		"name":                   client.Name,
		"surname":                client.Surname,
		"email":                  client.Email,
		"address":                client.Address,
		"company_name":           client.CompanyName,
		"contact_person_details": client.ContactPersonDetails,
		"updated_at":             now,
	})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	client.UpdatedAt = now
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var row clientRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *clientRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&clientRow{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	var rows []clientRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	result := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row.toDomain())
	}
	return result, nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&clientRow{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
