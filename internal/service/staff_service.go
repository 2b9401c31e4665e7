package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/config"
	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/events"
	"github.com/agate-ltd/agency-crm/internal/repository"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

const (
	defaultStaffPageSize = 9
	maxAvatarListSize    = 500
)

// StaffService manages staff accounts after signup.
type StaffService struct {
	staff      repository.StaffRepository
	bcryptCost int
	events     publisher
	now        func() time.Time
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, staff repository.StaffRepository, dispatcher events.Dispatcher) *StaffService {
	return &StaffService{
		staff:      staff,
		bcryptCost: cfg.Auth.BcryptCost,
		events:     newPublisher(dispatcher),
		now:        time.Now,
	}
}

// StaffListParams mirrors the dashboard's paging query.
type StaffListParams struct {
	StartIndex int
	Limit      int
	Ascending  bool
}

// StaffPage is one page of staff plus totals.
type StaffPage struct {
	Staff          []domain.StaffMember
	TotalUsers     int
	LastMonthUsers int
}

// List returns a page of staff ordered by creation time, with overall and last-month totals.
func (s *StaffService) List(ctx context.Context, params StaffListParams) (*StaffPage, error) {
	if params.Limit <= 0 {
		params.Limit = defaultStaffPageSize
	}
	if params.StartIndex < 0 {
		params.StartIndex = 0
	}

	now := s.now()
	oneMonthAgo := time.Date(now.Year(), now.Month()-1, now.Day(), 0, 0, 0, 0, now.Location())

	page := &StaffPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		staff, err := s.staff.List(gctx, repository.StaffFilter{
			Ascending: params.Ascending,
			Limit:     params.Limit,
			Offset:    params.StartIndex,
		})
		page.Staff = staff
		return err
	})
	g.Go(func() error {
		total, err := s.staff.Count(gctx, nil)
		page.TotalUsers = total
		return err
	})
	g.Go(func() error {
		recent, err := s.staff.Count(gctx, &oneMonthAgo)
		page.LastMonthUsers = recent
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.MapError(err)
	}
	return page, nil
}

// Avatars lists every staff member for the avatar picker.
func (s *StaffService) Avatars(ctx context.Context) ([]domain.StaffMember, error) {
	staff, err := s.staff.List(ctx, repository.StaffFilter{Ascending: true, Limit: maxAvatarListSize})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// GetByID fetches a staff member by record id.
func (s *StaffService) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, staffError(err)
	}
	return staff, nil
}

// GetByStaffID fetches a staff member by 6-digit staff ID.
func (s *StaffService) GetByStaffID(ctx context.Context, staffID string) (*domain.StaffMember, error) {
	if !domain.ValidStaffID(staffID) {
		return nil, apperrors.NewValidationError("Staff ID must be 6 digits!", map[string]any{"staffId": staffID})
	}
	staff, err := s.staff.GetByStaffID(ctx, staffID)
	if err != nil {
		return nil, staffError(err)
	}
	return staff, nil
}

// UpdatePermissions replaces the role set. Existing sessions keep their old claims until reissued.
func (s *StaffService) UpdatePermissions(ctx context.Context, id string, roles domain.Roles) (*domain.StaffMember, error) {
	staff, err := s.staff.UpdateRoles(ctx, id, roles)
	if err != nil {
		return nil, staffError(err)
	}
	s.events.publish(ctx, events.EventStaffRolesSet, staff.ID, events.RolesPayload(staff))
	return staff, nil
}

// StaffUpdateInput holds optional profile changes. Nil fields are left untouched.
type StaffUpdateInput struct {
	StaffID        *string
	FirstName      *string
	LastName       *string
	Password       *string
	ProfilePicture *string
	Roles          *domain.Roles
}

// UpdateInfo applies profile changes, re-checking staff ID uniqueness.
func (s *StaffService) UpdateInfo(ctx context.Context, id string, in StaffUpdateInput) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, staffError(err)
	}

	if in.StaffID != nil && *in.StaffID != staff.StaffID {
		if !domain.ValidStaffID(*in.StaffID) {
			return nil, apperrors.NewValidationError("Staff ID must be 6 digits!", map[string]any{"staffId": *in.StaffID})
		}
		existing, err := s.staff.GetByStaffID(ctx, *in.StaffID)
		switch {
		case err == nil && existing.ID != staff.ID:
			return nil, apperrors.NewConflict("Staff ID already exists", map[string]any{"staffId": *in.StaffID})
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.MapError(err)
		}
		staff.StaffID = *in.StaffID
	}

	firstName, lastName := staff.FirstName, staff.LastName
	if in.FirstName != nil {
		firstName = *in.FirstName
	}
	if in.LastName != nil {
		lastName = *in.LastName
	}
	if err := validateNames(firstName, lastName); err != nil {
		return nil, err
	}
	staff.FirstName = strings.TrimSpace(firstName)
	staff.LastName = strings.TrimSpace(lastName)

	if in.ProfilePicture != nil {
		staff.ProfilePicture = strings.TrimSpace(*in.ProfilePicture)
		if staff.ProfilePicture == "" {
			staff.ProfilePicture = domain.DefaultProfilePicture
		}
	}
	if in.Roles != nil {
		staff.Roles = *in.Roles
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < minPasswordLength {
			return nil, apperrors.NewValidationError("Password must be at least 6 characters long", nil)
		}
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		staff.PasswordHash = hash
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Staff ID already exists", map[string]any{"staffId": staff.StaffID})
		}
		return nil, staffError(err)
	}
	s.events.publish(ctx, events.EventStaffUpdated, staff.ID, events.RolesPayload(staff))
	return staff, nil
}

// Delete removes a staff account.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		return staffError(err)
	}
	s.events.publish(ctx, events.EventStaffDeleted, id, nil)
	return nil
}

func staffError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Staff", nil)
	}
	return apperrors.MapError(err)
}
