package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/internal/config"
	"github.com/taskvault/backend/internal/services"
	"github.com/taskvault/backend/pkg/password"
	"github.com/taskvault/backend/repository/memory"
)

func TestEnsureAdminCreatesAccount(t *testing.T) {
	users := memory.NewUserRepository()

	cfg := config.BootstrapConfig{
		Enabled:       true,
		AdminName:     "Root",
		AdminEmail:    "root@example.com",
		AdminPassword: "Sup3rSecret",
	}

	require.NoError(t, services.EnsureAdmin(context.Background(), users, cfg, nil))

	admin, err := users.GetByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, admin.Role)
	assert.True(t, password.Verify(admin.PasswordHash, "Sup3rSecret"))
}

func TestEnsureAdminIdempotent(t *testing.T) {
	users := memory.NewUserRepository()

	cfg := config.BootstrapConfig{
		Enabled:       true,
		AdminName:     "Root",
		AdminEmail:    "root@example.com",
		AdminPassword: "Sup3rSecret",
	}

	require.NoError(t, services.EnsureAdmin(context.Background(), users, cfg, nil))
	first, err := users.GetByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)

	require.NoError(t, services.EnsureAdmin(context.Background(), users, cfg, nil))
	second, err := users.GetByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)
}

func TestEnsureAdminDisabled(t *testing.T) {
	users := memory.NewUserRepository()

	cfg := config.BootstrapConfig{
		Enabled:       false,
		AdminEmail:    "root@example.com",
		AdminPassword: "Sup3rSecret",
	}

	require.NoError(t, services.EnsureAdmin(context.Background(), users, cfg, nil))

	_, err := users.GetByEmail(context.Background(), "root@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
