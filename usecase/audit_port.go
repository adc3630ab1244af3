package usecase

import (
	"context"

	"github.com/taskvault/backend/domain"
)

// AuditTrail abstracts the audit store so use cases stay storage-agnostic.
type AuditTrail interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
