package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/repository"
)

type staffRepository struct {
	db *gorm.DB
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	row := staffRow{
		StaffID:        staff.StaffID,
		FirstName:      staff.FirstName,
		LastName:       staff.LastName,
		PasswordHash:   staff.PasswordHash,
		ProfilePicture: staff.ProfilePicture,
		Roles:          uint8(staff.Roles),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError(err)
	}
	staff.ID = row.ID
	staff.CreatedAt = row.CreatedAt
	staff.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffMember) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&staffRow{}).Where("id = ?", staff.ID).Updates(map[string]any{
		"staff_id":        staff.StaffID,
		"first_name":      staff.FirstName,
		"last_name":       staff.LastName,
		"password_hash":   staff.PasswordHash,
		"profile_picture": staff.ProfilePicture,
		"roles":           uint8(staff.Roles),
		"updated_at":      now,
	})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	staff.UpdatedAt = now
	return nil
}

func (r *staffRepository) UpdateRoles(ctx context.Context, id string, roles domain.Roles) (*domain.StaffMember, error) {
	res := r.db.WithContext(ctx).Model(&staffRow{}).Where("id = ?", id).Updates(map[string]any{
		"roles":      uint8(roles),
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	var row staffRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *staffRepository) GetByStaffID(ctx context.Context, staffID string) (*domain.StaffMember, error) {
	var row staffRow
	if err := r.db.WithContext(ctx).Where("staff_id = ?", staffID).First(&row).Error; err != nil {
		return nil, mapError(err)
	}
	return row.toDomain(), nil
}

func (r *staffRepository) List(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	order := "created_at DESC"
	if filter.Ascending {
		order = "created_at ASC"
	}
	limit, offset := page(filter.Limit, filter.Offset)

	var rows []staffRow
	if err := r.db.WithContext(ctx).Order(order).Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	result := make([]domain.StaffMember, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row.toDomain())
	}
	return result, nil
}

func (r *staffRepository) Count(ctx context.Context, createdSince *time.Time) (int, error) {
	q := r.db.WithContext(ctx).Model(&staffRow{})
	if createdSince != nil {
		q = q.Where("created_at >= ?", *createdSince)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, mapError(err)
	}
	return int(count), nil
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&staffRow{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
