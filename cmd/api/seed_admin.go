package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/domain"
	"github.com/agate-ltd/agency-crm/internal/persistence"
	"github.com/agate-ltd/agency-crm/internal/repository"
	"github.com/agate-ltd/agency-crm/internal/service"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the first admin account from BOOTSTRAP_ADMIN_* variables",
	Long:  `Signup is admin-only, so the first admin has to be created out of band. Re-running grants the admin role to an existing account.`,
	RunE:  runSeedAdmin,
}

func runSeedAdmin(_ *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.BootstrapAdminStaffID == "" || cfg.Auth.BootstrapAdminPassword == "" {
		return errors.New("BOOTSTRAP_ADMIN_STAFF_ID and BOOTSTRAP_ADMIN_PASSWORD are required")
	}

	ctx := context.Background()
	store, err := persistence.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	staffRepo := store.Repositories.Staff
	existing, err := staffRepo.GetByStaffID(ctx, cfg.Auth.BootstrapAdminStaffID)
	switch {
	case err == nil:
		if existing.Roles.Has(domain.RoleAdmin) {
			logger.Info("admin already exists", zap.String("staff_id", existing.StaffID))
			return nil
		}
		if _, err := staffRepo.UpdateRoles(ctx, existing.ID, existing.Roles.With(domain.RoleAdmin, true)); err != nil {
			return err
		}
		logger.Info("granted admin role", zap.String("staff_id", existing.StaffID))
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	if err != nil {
		return err
	}
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StaffRepo: staffRepo,
		Tokens:    tokens,
		Logger:    logger,
	})
	staff, err := authService.SignUp(ctx, service.SignUpInput{
		StaffID:   cfg.Auth.BootstrapAdminStaffID,
		FirstName: cfg.Auth.BootstrapAdminFirstName,
		LastName:  cfg.Auth.BootstrapAdminLastName,
		Password:  cfg.Auth.BootstrapAdminPassword,
		Roles:     domain.RoleSet(domain.RoleAdmin),
	})
	if err != nil {
		return err
	}
	logger.Info("seeded admin", zap.String("staff_id", staff.StaffID), zap.String("id", staff.ID))
	return nil
}
