package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
	"github.com/taskvault/backend/repository/memory"
)

func TestListNewestFirst(t *testing.T) {
	repo := memory.NewTaskRepository()
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, &domain.Task{
			UserID:   "alice",
			Title:    title,
			Priority: domain.PriorityLow,
			Status:   domain.StatusPending,
		})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	tasks, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "first", tasks[2].Title)
}

func TestListFilterAndPagination(t *testing.T) {
	repo := memory.NewTaskRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		status := domain.StatusPending
		if i%2 == 0 {
			status = domain.StatusCompleted
		}
		_, err := repo.Create(ctx, &domain.Task{
			UserID:   "alice",
			Title:    "task",
			Priority: domain.PriorityLow,
			Status:   status,
		})
		require.NoError(t, err)
	}

	completed, err := repo.List(ctx, repository.TaskFilter{Status: "completed"})
	require.NoError(t, err)
	assert.Len(t, completed, 3)

	page, err := repo.List(ctx, repository.TaskFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	empty, err := repo.List(ctx, repository.TaskFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateKeepsCreatedAt(t *testing.T) {
	repo := memory.NewTaskRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Task{
		UserID: "alice", Title: "orig",
		Priority: domain.PriorityLow, Status: domain.StatusPending,
	})
	require.NoError(t, err)
	createdAt := created.CreatedAt

	created.Title = "changed"
	require.NoError(t, repo.Update(ctx, created))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", stored.Title)
	assert.True(t, createdAt.Equal(stored.CreatedAt))
}

func TestUserDeleteCascade(t *testing.T) {
	tasks := memory.NewTaskRepository()
	users := memory.NewUserRepository().WithTaskCascade(tasks)
	ctx := context.Background()

	user, err := users.Create(ctx, &domain.User{Name: "Jane", Email: "jane@example.com", Role: domain.RoleUser})
	require.NoError(t, err)

	owned, err := tasks.Create(ctx, &domain.Task{
		UserID: user.ID, Title: "owned",
		Priority: domain.PriorityLow, Status: domain.StatusPending,
	})
	require.NoError(t, err)

	other, err := tasks.Create(ctx, &domain.Task{
		UserID: "someone-else", Title: "kept",
		Priority: domain.PriorityLow, Status: domain.StatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err = tasks.GetByID(ctx, owned.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = tasks.GetByID(ctx, other.ID)
	assert.NoError(t, err)
}
