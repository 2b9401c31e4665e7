package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

// StaffRepository handles persistence for staff members.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	Update(ctx context.Context, staff *domain.StaffMember) error
	UpdateRoles(ctx context.Context, id string, roles domain.Roles) (*domain.StaffMember, error)
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByStaffID(ctx context.Context, staffID string) (*domain.StaffMember, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error)
	Count(ctx context.Context, createdSince *time.Time) (int, error)
	Delete(ctx context.Context, id string) error
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	Ascending bool
	Limit     int
	Offset    int
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, staff_id, first_name, last_name, password_hash, profile_picture, roles, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (staff_id, first_name, last_name, password_hash, profile_picture, roles)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		staff.StaffID,
		staff.FirstName,
		staff.LastName,
		staff.PasswordHash,
		staff.ProfilePicture,
		int16(staff.Roles),
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
	return mapPgError(err)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        UPDATE staff_members
        SET staff_id=$1, first_name=$2, last_name=$3, password_hash=$4, profile_picture=$5, roles=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		staff.StaffID,
		staff.FirstName,
		staff.LastName,
		staff.PasswordHash,
		staff.ProfilePicture,
		int16(staff.Roles),
		staff.ID,
	).Scan(&staff.UpdatedAt)
	return mapPgError(err)
}

func (r *staffRepository) UpdateRoles(ctx context.Context, id string, roles domain.Roles) (*domain.StaffMember, error) {
	query := `
        UPDATE staff_members SET roles=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + staffColumns

	staff, err := scanStaff(r.pool.QueryRow(ctx, query, int16(roles), id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return staff, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE id=$1`
	staff, err := scanStaff(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return staff, nil
}

func (r *staffRepository) GetByStaffID(ctx context.Context, staffID string) (*domain.StaffMember, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE staff_id=$1`
	staff, err := scanStaff(r.pool.QueryRow(ctx, query, staffID))
	if err != nil {
		return nil, mapPgError(err)
	}
	return staff, nil
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffMember, error) {
	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}
	limit, offset := normalizePage(filter.Limit, filter.Offset, 9)
	query := fmt.Sprintf(`SELECT %s FROM staff_members ORDER BY created_at %s LIMIT %d OFFSET %d`,
		staffColumns, direction, limit, offset)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var result []domain.StaffMember
	for rows.Next() {
		staff, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *staff)
	}
	return result, rows.Err()
}

func (r *staffRepository) Count(ctx context.Context, createdSince *time.Time) (int, error) {
	var (
		count int
		err   error
	)
	if createdSince != nil {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff_members WHERE created_at >= $1`, *createdSince).Scan(&count)
	} else {
		err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff_members`).Scan(&count)
	}
	return count, mapPgError(err)
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff_members WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStaff(row pgx.Row) (*domain.StaffMember, error) {
	var (
		staff domain.StaffMember
		roles int16
	)
	if err := row.Scan(
		&staff.ID,
		&staff.StaffID,
		&staff.FirstName,
		&staff.LastName,
		&staff.PasswordHash,
		&staff.ProfilePicture,
		&roles,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	staff.Roles = domain.Roles(roles)
	return &staff, nil
}
