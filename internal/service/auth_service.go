package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/config"
	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/events"
	"github.com/agate-ltd/agency-crm/internal/repository"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

const minPasswordLength = 6

// AuthService coordinates staff signup, sign-in and session renewal.
type AuthService struct {
	staff      repository.StaffRepository
	tokens     *auth.TokenManager
	limiter    auth.AttemptLimiter
	bcryptCost int
	events     publisher
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	StaffRepo  repository.StaffRepository
	Tokens     *auth.TokenManager
	Limiter    auth.AttemptLimiter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	limiter := deps.Limiter
	if limiter == nil {
		limiter = auth.NoopAttemptLimiter{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		staff:      deps.StaffRepo,
		tokens:     deps.Tokens,
		limiter:    limiter,
		bcryptCost: cfg.Auth.BcryptCost,
		events:     newPublisher(deps.Dispatcher),
		logger:     logger,
	}
}

// SignUpInput carries a new staff account.
type SignUpInput struct {
	StaffID   string
	FirstName string
	LastName  string
	Password  string
	Roles     domain.Roles
}

// SignUp creates a staff account. Validation runs before any store access.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*domain.StaffMember, error) {
	if in.StaffID == "" || in.FirstName == "" || in.LastName == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("All fields are required!", nil)
	}
	if !domain.ValidStaffID(in.StaffID) {
		return nil, apperrors.NewValidationError("Staff ID must be 6 digits!", map[string]any{"staffId": in.StaffID})
	}
	if err := validateNames(in.FirstName, in.LastName); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("Password must be at least 6 characters long", nil)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	staff := &domain.StaffMember{
		StaffID:        in.StaffID,
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		PasswordHash:   hash,
		ProfilePicture: domain.DefaultProfilePicture,
		Roles:          in.Roles,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Staff ID already exists", map[string]any{"staffId": in.StaffID})
		}
		return nil, apperrors.MapError(err)
	}

	s.events.publish(ctx, events.EventStaffCreated, staff.ID, events.RolesPayload(staff))
	return staff, nil
}

// SignIn verifies credentials and issues a session.
func (s *AuthService) SignIn(ctx context.Context, staffID, password string) (*domain.StaffMember, domain.Session, error) {
	if staffID == "" || password == "" {
		return nil, domain.Session{}, apperrors.NewValidationError("Staff ID and password are required", nil)
	}
	if !domain.ValidStaffID(staffID) {
		return nil, domain.Session{}, apperrors.NewValidationError("Staff ID must be 6 digits!", map[string]any{"staffId": staffID})
	}

	allowed, err := s.limiter.Allow(ctx, staffID)
	if err != nil {
		s.logger.Warn("sign-in limiter unavailable", zap.Error(err))
	} else if !allowed {
		return nil, domain.Session{}, apperrors.NewTooManyRequests("Too many sign-in attempts - Please try again later")
	}

	staff, err := s.staff.GetByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recordFailure(ctx, staffID)
			return nil, domain.Session{}, apperrors.NewNotFound("Staff", nil)
		}
		return nil, domain.Session{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.recordFailure(ctx, staffID)
			return nil, domain.Session{}, apperrors.NewValidationError("Invalid password", nil)
		}
		return nil, domain.Session{}, apperrors.NewInternalError(err)
	}

	if err := s.limiter.Reset(ctx, staffID); err != nil {
		s.logger.Warn("reset sign-in attempts", zap.String("staff_id", staffID), zap.Error(err))
	}

	session, err := s.tokens.Issue(staff.ID, staff.StaffID, staff.Roles)
	if err != nil {
		return nil, domain.Session{}, apperrors.NewInternalError(err)
	}

	ctx = events.WithActor(ctx, events.Actor{ID: staff.ID, StaffID: staff.StaffID})
	s.events.publish(ctx, events.EventStaffSignedIn, staff.ID, nil)
	return staff, session, nil
}

// Refresh reissues a session carrying the same claims with a fresh expiry.
func (s *AuthService) Refresh(ctx context.Context, claims *auth.Claims) (domain.Session, error) {
	if claims == nil || claims.ID == "" {
		return domain.Session{}, apperrors.NewUnauthorized(auth.MsgNoCredential)
	}
	session, err := s.tokens.Issue(claims.ID, claims.StaffID, claims.Roles)
	if err != nil {
		return domain.Session{}, apperrors.NewInternalError(err)
	}
	return session, nil
}

func (s *AuthService) recordFailure(ctx context.Context, staffID string) {
	if err := s.limiter.Fail(ctx, staffID); err != nil {
		s.logger.Warn("record failed sign-in", zap.String("staff_id", staffID), zap.Error(err))
	}
}

func validateNames(firstName, lastName string) error {
	if len([]rune(strings.TrimSpace(firstName))) < 2 {
		return apperrors.NewValidationError("First name must be at least 2 characters long", nil)
	}
	if len([]rune(strings.TrimSpace(lastName))) < 2 {
		return apperrors.NewValidationError("Last name must be at least 2 characters long", nil)
	}
	return nil
}
