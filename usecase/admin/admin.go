// Package admin implements the role-gated management surface: a distinct
// consumer of the same entity store with a broader authorization scope
// than the user-facing task API.
package admin

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
	"github.com/taskvault/backend/usecase"
)

type UseCase struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	audit  usecase.AuditTrail
	logger *zap.Logger
}

func New(users repository.UserRepository, tasks repository.TaskRepository, audit usecase.AuditTrail, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tasks:  tasks,
		audit:  audit,
		logger: logger,
	}
}

func requireAdmin(actor *domain.User) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// roleChangeAllowed enforces that only a super-admin may grant or revoke
// elevated roles.
func roleChangeAllowed(actor *domain.User, from, to domain.Role) bool {
	if from == to {
		return true
	}
	if from.IsAdmin() || to.IsAdmin() {
		return actor.Role == domain.RoleSuperAdmin
	}
	return true
}

func (uc *UseCase) ListUsers(ctx context.Context, actor *domain.User, filter repository.UserFilter) ([]domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.users.List(ctx, filter)
}

func (uc *UseCase) GetUser(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.users.GetByID(ctx, id)
}

func (uc *UseCase) CreateUser(ctx context.Context, actor *domain.User, user *domain.User) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !roleChangeAllowed(actor, domain.RoleUser, user.Role) {
		return nil, domain.ErrForbidden
	}

	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, actor.ID, domain.AuditEntityUser, domain.AuditActionCreate, created.ID)
	return created, nil
}

func (uc *UseCase) UpdateUser(ctx context.Context, actor *domain.User, id string, apply func(*domain.User)) (*domain.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousRole := user.Role
	apply(user)

	if !roleChangeAllowed(actor, previousRole, user.Role) {
		return nil, domain.ErrForbidden
	}

	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.record(ctx, actor.ID, domain.AuditEntityUser, domain.AuditActionUpdate, user.ID)
	return user, nil
}

// DeleteUser removes a user; owned tasks cascade at the storage layer.
// Removing an elevated account requires super-admin.
func (uc *UseCase) DeleteUser(ctx context.Context, actor *domain.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() && actor.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}

	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}

	uc.record(ctx, actor.ID, domain.AuditEntityUser, domain.AuditActionDelete, id)
	return nil
}

// ListTasks returns tasks across all owners, optionally filtered.
func (uc *UseCase) ListTasks(ctx context.Context, actor *domain.User, filter repository.TaskFilter) ([]domain.Task, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return uc.tasks.List(ctx, filter)
}

// UpdateTask edits any user's task; the ownership gate does not apply to
// the admin surface.
func (uc *UseCase) UpdateTask(ctx context.Context, actor *domain.User, id string, apply func(*domain.Task)) (*domain.Task, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(task)

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	uc.record(ctx, actor.ID, domain.AuditEntityTask, domain.AuditActionUpdate, task.ID)
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, actor *domain.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}

	uc.record(ctx, actor.ID, domain.AuditEntityTask, domain.AuditActionDelete, id)
	return nil
}

// Activity returns the most recent audit entries.
func (uc *UseCase) Activity(ctx context.Context, actor *domain.User, limit int) ([]domain.AuditEntry, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if uc.audit == nil {
		return nil, nil
	}
	return uc.audit.Recent(ctx, limit)
}

func (uc *UseCase) record(ctx context.Context, actorID, entity, action, subjectID string) {
	if uc.audit == nil {
		return
	}
	entry := domain.AuditEntry{
		ActorID:   actorID,
		Entity:    entity,
		Action:    action,
		SubjectID: subjectID,
	}
	if err := uc.audit.Record(ctx, entry); err != nil {
		uc.logger.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}
