package repository

import (
	"context"

	"github.com/taskvault/backend/domain"
)

type TaskFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

// TaskRepository persists tasks. The owner-scoped methods fold the
// ownership check into the query itself, so a task owned by someone else
// is indistinguishable from a missing one. GetByID is deliberately
// unscoped: the update path loads first and reports Forbidden separately.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetOwned(ctx context.Context, userID, id string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteOwned(ctx context.Context, userID, id string) error
}
