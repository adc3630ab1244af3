package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
	"github.com/taskvault/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	audit  usecase.AuditTrail
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, audit usecase.AuditTrail, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		audit:  audit,
		logger: logger,
	}
}

// List returns the current user's tasks, newest first.
func (uc *UseCase) List(ctx context.Context, user *domain.User) ([]domain.Task, error) {
	return uc.tasks.ListByUser(ctx, user.ID)
}

// Get fetches a task through an owner-scoped query: a task owned by
// someone else is indistinguishable from a missing one.
func (uc *UseCase) Get(ctx context.Context, user *domain.User, id string) (*domain.Task, error) {
	return uc.tasks.GetOwned(ctx, user.ID, id)
}

// Create persists a new task owned by the current user. The owner is
// forced to the requester regardless of payload contents.
func (uc *UseCase) Create(ctx context.Context, user *domain.User, task *domain.Task) (*domain.Task, error) {
	task.UserID = user.ID

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, user.ID, domain.AuditActionCreate, created.ID)
	return created, nil
}

// Update loads the task unscoped, then runs the ownership gate explicitly:
// a missing task is NotFound while someone else's task is Forbidden. This
// differs from Get/Delete on purpose.
func (uc *UseCase) Update(ctx context.Context, user *domain.User, id string, apply func(*domain.Task)) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanAccess(user, task) {
		return nil, domain.ErrForbidden
	}

	apply(task)

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	uc.record(ctx, user.ID, domain.AuditActionUpdate, task.ID)
	return task, nil
}

// Delete removes a task through an owner-scoped query; like Get, a foreign
// task reports NotFound.
func (uc *UseCase) Delete(ctx context.Context, user *domain.User, id string) error {
	if err := uc.tasks.DeleteOwned(ctx, user.ID, id); err != nil {
		return err
	}

	uc.record(ctx, user.ID, domain.AuditActionDelete, id)
	return nil
}

func (uc *UseCase) record(ctx context.Context, actorID, action, subjectID string) {
	if uc.audit == nil {
		return
	}
	entry := domain.AuditEntry{
		ActorID:   actorID,
		Entity:    domain.AuditEntityTask,
		Action:    action,
		SubjectID: subjectID,
	}
	if err := uc.audit.Record(ctx, entry); err != nil {
		uc.logger.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}
