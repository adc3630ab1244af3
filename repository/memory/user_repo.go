package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User

	// optional hook so user deletion can cascade to owned tasks,
	// mirroring the ON DELETE CASCADE constraint in Postgres
	tasks *TaskRepository
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// WithTaskCascade wires the task repository so Delete removes owned tasks.
func (r *UserRepository) WithTaskCascade(tasks *TaskRepository) *UserRepository {
	r.tasks = tasks
	return r
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []domain.User
	for _, user := range r.users {
		if filter.Role != "" && string(user.Role) != filter.Role {
			continue
		}
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(users) {
			return nil, nil
		}
		users = users[filter.Offset:]
	}
	if filter.Limit > 0 && len(users) > filter.Limit {
		users = users[:filter.Limit]
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = *user
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, other := range r.users {
		if id != user.ID && other.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()

	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.users[id]; !ok {
		r.mu.Unlock()
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	r.mu.Unlock()

	if r.tasks != nil {
		tasks, _ := r.tasks.ListByUser(ctx, id)
		for _, task := range tasks {
			_ = r.tasks.Delete(ctx, task.ID)
		}
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
