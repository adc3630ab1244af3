package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/repository"
)

type tokenRepository struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewTokenRepository creates a Redis-backed bearer token repository.
// Tokens expire server-side via the Redis TTL, so an expired token simply
// stops resolving.
func NewTokenRepository(client *redislib.Client, ttl time.Duration) repository.TokenRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &tokenRepository{
		client: client,
		prefix: "token:",
		ttl:    ttl,
	}
}

func (r *tokenRepository) Get(ctx context.Context, id string) (*domain.Token, error) {
	result, err := r.client.Get(ctx, r.key(id)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}

	var token domain.Token
	if err := json.Unmarshal([]byte(result), &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Save(ctx context.Context, token *domain.Token) error {
	if token == nil || token.ID == "" {
		return domain.ErrInvalidPayload
	}

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	if token.ExpiresAt.Before(token.CreatedAt) {
		token.ExpiresAt = token.CreatedAt.Add(r.ttl)
	}

	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		ttl = r.ttl
	}

	return r.client.Set(ctx, r.key(token.ID), payload, ttl).Err()
}

func (r *tokenRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

func (r *tokenRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}
