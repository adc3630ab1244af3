package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/internal/config"
	"github.com/taskvault/backend/pkg/password"
	"github.com/taskvault/backend/repository"
)

// EnsureAdmin seeds the configured super-admin account unless a user with
// that email already exists. No-op when bootstrap is disabled.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, cfg config.BootstrapConfig, logger *zap.Logger) error {
	if !cfg.Enabled || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := users.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return err
	}

	hash, err := password.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
	}

	if _, err := users.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("bootstrap admin created", zap.String("email", cfg.AdminEmail))
	return nil
}
