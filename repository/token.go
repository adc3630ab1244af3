package repository

import (
	"context"

	"github.com/taskvault/backend/domain"
)

type TokenRepository interface {
	Get(ctx context.Context, id string) (*domain.Token, error)
	Save(ctx context.Context, token *domain.Token) error
	Delete(ctx context.Context, id string) error
}
