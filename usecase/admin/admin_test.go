package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
	"github.com/taskvault/backend/repository/memory"
	"github.com/taskvault/backend/usecase/admin"
)

type fixture struct {
	uc    *admin.UseCase
	users *memory.UserRepository
	tasks *memory.TaskRepository

	regular    *domain.User
	admin      *domain.User
	superAdmin *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tasks := memory.NewTaskRepository()
	users := memory.NewUserRepository().WithTaskCascade(tasks)

	f := &fixture{
		uc:    admin.New(users, tasks, nil, nil),
		users: users,
		tasks: tasks,
	}

	ctx := context.Background()
	var err error
	f.regular, err = users.Create(ctx, &domain.User{Name: "Reg", Email: "reg@example.com", Role: domain.RoleUser})
	require.NoError(t, err)
	f.admin, err = users.Create(ctx, &domain.User{Name: "Adm", Email: "adm@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	f.superAdmin, err = users.Create(ctx, &domain.User{Name: "Root", Email: "root@example.com", Role: domain.RoleSuperAdmin})
	require.NoError(t, err)

	return f
}

func TestAdminSurfaceRequiresAdminRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.ListUsers(ctx, f.regular, repository.UserFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.ListTasks(ctx, f.regular, repository.TaskFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = f.uc.DeleteUser(ctx, f.regular, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Activity(ctx, f.regular, 10)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateUserRoleGating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.CreateUser(ctx, f.admin, &domain.User{
		Name: "New", Email: "new@example.com", Role: domain.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, created.Role)

	// only super-admin may mint elevated accounts
	_, err = f.uc.CreateUser(ctx, f.admin, &domain.User{
		Name: "Escalate", Email: "esc@example.com", Role: domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.CreateUser(ctx, f.superAdmin, &domain.User{
		Name: "Second Adm", Email: "adm2@example.com", Role: domain.RoleAdmin,
	})
	assert.NoError(t, err)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateUser(context.Background(), f.admin, &domain.User{
		Name: "Dup", Email: "reg@example.com", Role: domain.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateUserRoleChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	promote := func(u *domain.User) { u.Role = domain.RoleAdmin }

	_, err := f.uc.UpdateUser(ctx, f.admin, f.regular.ID, promote)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.uc.UpdateUser(ctx, f.superAdmin, f.regular.ID, promote)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	// same-role edits never need super-admin
	rename := func(u *domain.User) { u.Name = "Renamed" }
	updated, err = f.uc.UpdateUser(ctx, f.admin, f.regular.ID, rename)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestDeleteUserCascadesTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owned, err := f.tasks.Create(ctx, &domain.Task{
		UserID: f.regular.ID, Title: "Orphan-to-be",
		Priority: domain.PriorityLow, Status: domain.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteUser(ctx, f.admin, f.regular.ID))

	_, err = f.users.GetByID(ctx, f.regular.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.tasks.GetByID(ctx, owned.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteElevatedUserNeedsSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.uc.DeleteUser(ctx, f.admin, f.superAdmin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.uc.DeleteUser(ctx, f.superAdmin, f.admin.ID))
}

func TestAdminTaskSurfaceCrossesOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owned, err := f.tasks.Create(ctx, &domain.Task{
		UserID: f.regular.ID, Title: "Someone else's",
		Priority: domain.PriorityLow, Status: domain.StatusPending,
	})
	require.NoError(t, err)

	all, err := f.uc.ListTasks(ctx, f.admin, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	updated, err := f.uc.UpdateTask(ctx, f.admin, owned.ID, func(task *domain.Task) {
		task.Status = domain.StatusCompleted
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	require.NoError(t, f.uc.DeleteTask(ctx, f.admin, owned.ID))
	err = f.uc.DeleteTask(ctx, f.admin, owned.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
