package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

type contactRepository struct {
	db *gorm.DB
}

func (r *contactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	row := contactRow{Name: msg.Name, Email: msg.Email, Message: msg.Message}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError(err)
	}
	msg.ID = row.ID
	msg.CreatedAt = row.CreatedAt
	return nil
}

func (r *contactRepository) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error) {
	limit, offset = page(limit, offset)
	var rows []contactRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	result := make([]domain.ContactMessage, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.ContactMessage{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		})
	}
	return result, nil
}

func (r *contactRepository) Count(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&contactRow{}).Count(&count).Error; err != nil {
		return 0, mapError(err)
	}
	return int(count), nil
}
