package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskvault/backend/domain"
)

func TestPriorityValid(t *testing.T) {
	for _, p := range domain.PriorityValues() {
		assert.True(t, p.Valid(), p.String())
		assert.NotEmpty(t, p.Label())
	}
	assert.False(t, domain.Priority("urgent").Valid())
	assert.False(t, domain.Priority("").Valid())
}

func TestTaskStatusValid(t *testing.T) {
	for _, s := range domain.TaskStatusValues() {
		assert.True(t, s.Valid(), s.String())
		assert.NotEmpty(t, s.Label())
	}
	assert.False(t, domain.TaskStatus("done").Valid())
	assert.Equal(t, "In Progress", domain.StatusInProgress.Label())
	assert.Equal(t, "in progress", domain.StatusInProgress.String())
}

func TestRoleIsAdmin(t *testing.T) {
	assert.False(t, domain.RoleUser.IsAdmin())
	assert.True(t, domain.RoleAdmin.IsAdmin())
	assert.True(t, domain.RoleSuperAdmin.IsAdmin())
	assert.False(t, domain.Role("owner").Valid())
}

func TestCanAccess(t *testing.T) {
	owner := &domain.User{ID: "u1"}
	other := &domain.User{ID: "u2"}
	task := &domain.Task{ID: "t1", UserID: "u1"}

	assert.True(t, domain.CanAccess(owner, task))
	assert.False(t, domain.CanAccess(other, task))
	assert.False(t, domain.CanAccess(nil, task))
	assert.False(t, domain.CanAccess(owner, nil))
}

func TestTokenIsExpired(t *testing.T) {
	now := time.Now()

	live := &domain.Token{ID: "a", ExpiresAt: now.Add(time.Hour)}
	assert.False(t, live.IsExpired(now))

	expired := &domain.Token{ID: "b", ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, expired.IsExpired(now))

	boundary := &domain.Token{ID: "c", ExpiresAt: now}
	assert.True(t, boundary.IsExpired(now))

	var missing *domain.Token
	assert.True(t, missing.IsExpired(now))
}
