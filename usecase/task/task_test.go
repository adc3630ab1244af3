package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository/memory"
	"github.com/taskvault/backend/usecase/task"
)

// recorder is an in-memory audit trail for assertions.
type recorder struct {
	entries []domain.AuditEntry
}

func (r *recorder) Record(ctx context.Context, entry domain.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recorder) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return r.entries, nil
}

func newFixture(t *testing.T) (*task.UseCase, *memory.TaskRepository, *recorder) {
	t.Helper()
	repo := memory.NewTaskRepository()
	trail := &recorder{}
	return task.New(repo, trail, nil), repo, trail
}

var (
	alice = &domain.User{ID: "alice", Role: domain.RoleUser}
	bob   = &domain.User{ID: "bob", Role: domain.RoleUser}
)

func seedTask(t *testing.T, repo *memory.TaskRepository, owner *domain.User, title string) *domain.Task {
	t.Helper()
	created, err := repo.Create(context.Background(), &domain.Task{
		UserID:   owner.ID,
		Title:    title,
		Priority: domain.PriorityMedium,
		Status:   domain.StatusPending,
	})
	require.NoError(t, err)
	return created
}

func TestCreateForcesOwner(t *testing.T) {
	uc, _, trail := newFixture(t)

	due := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	created, err := uc.Create(context.Background(), alice, &domain.Task{
		UserID:   bob.ID,
		Title:    "Write report",
		Priority: domain.PriorityHigh,
		Status:   domain.StatusPending,
		DueDate:  &due,
	})
	require.NoError(t, err)

	assert.Equal(t, alice.ID, created.UserID)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.DueDate)
	assert.True(t, due.Equal(*created.DueDate))

	require.Len(t, trail.entries, 1)
	assert.Equal(t, domain.AuditActionCreate, trail.entries[0].Action)
	assert.Equal(t, alice.ID, trail.entries[0].ActorID)
}

func TestGetHidesForeignTasks(t *testing.T) {
	uc, repo, _ := newFixture(t)
	owned := seedTask(t, repo, alice, "Mine")

	got, err := uc.Get(context.Background(), alice, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, owned.ID, got.ID)

	_, err = uc.Get(context.Background(), bob, owned.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = uc.Get(context.Background(), alice, "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestListScopedToUser(t *testing.T) {
	uc, repo, _ := newFixture(t)
	seedTask(t, repo, alice, "First")
	seedTask(t, repo, alice, "Second")
	seedTask(t, repo, bob, "Not yours")

	tasks, err := uc.List(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, item := range tasks {
		assert.Equal(t, alice.ID, item.UserID)
	}
}

func TestUpdateOwnershipGate(t *testing.T) {
	uc, repo, _ := newFixture(t)
	owned := seedTask(t, repo, alice, "Mine")

	setDone := func(task *domain.Task) { task.Status = domain.StatusCompleted }

	updated, err := uc.Update(context.Background(), alice, owned.ID, setDone)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	// someone else's task exists, so the gate reports Forbidden
	_, err = uc.Update(context.Background(), bob, owned.ID, setDone)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(context.Background(), bob, "missing", setDone)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteScopedToOwner(t *testing.T) {
	uc, repo, trail := newFixture(t)
	owned := seedTask(t, repo, alice, "Mine")

	err := uc.Delete(context.Background(), bob, owned.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.NoError(t, uc.Delete(context.Background(), alice, owned.ID))

	// the second delete reports the task as gone
	err = uc.Delete(context.Background(), alice, owned.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	require.Len(t, trail.entries, 1)
	assert.Equal(t, domain.AuditActionDelete, trail.entries[0].Action)
	assert.Equal(t, owned.ID, trail.entries[0].SubjectID)
}
