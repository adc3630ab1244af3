package audit_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/internal/infrastructure/audit"
)

func openStore(t *testing.T) *audit.Store {
	t.Helper()
	store, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"), "audit")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Minute)
	for i, action := range []string{domain.AuditActionCreate, domain.AuditActionUpdate, domain.AuditActionDelete} {
		err := store.Record(ctx, domain.AuditEntry{
			ActorID:   "alice",
			Entity:    domain.AuditEntityTask,
			Action:    action,
			SubjectID: "t1",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// newest first
	assert.Equal(t, domain.AuditActionDelete, entries[0].Action)
	assert.Equal(t, domain.AuditActionCreate, entries[2].Action)

	limited, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRecordFillsDefaults(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, domain.AuditEntry{
		ActorID: "alice",
		Entity:  domain.AuditEntityAuth,
		Action:  domain.AuditActionLogin,
	}))

	entries, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestCleanupRemovesOldEntries(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	old := domain.AuditEntry{
		ActorID:   "alice",
		Entity:    domain.AuditEntityTask,
		Action:    domain.AuditActionCreate,
		Timestamp: time.Now().Add(-48 * time.Hour),
	}
	fresh := old
	fresh.Action = domain.AuditActionUpdate
	fresh.Timestamp = time.Now()

	require.NoError(t, store.Record(ctx, old))
	require.NoError(t, store.Record(ctx, fresh))

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 2, size)

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	size, err = store.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionUpdate, entries[0].Action)
}
