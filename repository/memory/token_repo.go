package memory

import (
	"context"
	"sync"
	"time"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
)

type TokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]domain.Token
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{tokens: make(map[string]domain.Token)}
}

func (r *TokenRepository) Get(ctx context.Context, id string) (*domain.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[id]
	if !ok || token.IsExpired(time.Now()) {
		return nil, domain.ErrTokenNotFound
	}
	return &token, nil
}

func (r *TokenRepository) Save(ctx context.Context, token *domain.Token) error {
	if token == nil || token.ID == "" {
		return domain.ErrInvalidPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	r.tokens[token.ID] = *token
	return nil
}

func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, id)
	return nil
}

// Count reports the number of stored tokens for a user. Test helper.
func (r *TokenRepository) Count(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int
	for _, token := range r.tokens {
		if token.UserID == userID {
			n++
		}
	}
	return n
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
