package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskvault/backend/domain"
	"github.com/taskvault/backend/pkg/password"
	"github.com/taskvault/backend/repository"
	"github.com/taskvault/backend/usecase"
)

type UseCase struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	audit  usecase.AuditTrail
	logger *zap.Logger
	ttl    time.Duration
}

func New(users repository.UserRepository, tokens repository.TokenRepository, audit usecase.AuditTrail, logger *zap.Logger, ttl time.Duration) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &UseCase{
		users:  users,
		tokens: tokens,
		audit:  audit,
		logger: logger,
		ttl:    ttl,
	}
}

// Login exchanges credentials for a new opaque bearer token. Unknown email
// and wrong password fail identically so the response never confirms
// whether an account exists.
func (uc *UseCase) Login(ctx context.Context, email, plain string) (string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !password.Verify(user.PasswordHash, plain) {
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	token := &domain.Token{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}

	if err := uc.tokens.Save(ctx, token); err != nil {
		return "", err
	}

	uc.record(ctx, user.ID, domain.AuditActionLogin, user.ID)
	return token.ID, nil
}

// Logout revokes exactly the token presented on the current request.
// Revoking an already-absent token is not an error.
func (uc *UseCase) Logout(ctx context.Context, user *domain.User, tokenID string) error {
	if err := uc.tokens.Delete(ctx, tokenID); err != nil {
		return err
	}
	if user != nil {
		uc.record(ctx, user.ID, domain.AuditActionLogout, user.ID)
	}
	return nil
}

// Authenticate resolves a bearer token to its user. Absent, unknown,
// expired, and revoked tokens are indistinguishable: all Unauthenticated.
func (uc *UseCase) Authenticate(ctx context.Context, tokenID string) (*domain.User, error) {
	if tokenID == "" {
		return nil, domain.ErrUnauthenticated
	}

	token, err := uc.tokens.Get(ctx, tokenID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if token.IsExpired(time.Now()) {
		_ = uc.tokens.Delete(ctx, tokenID)
		return nil, domain.ErrUnauthenticated
	}

	user, err := uc.users.GetByID(ctx, token.UserID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

func (uc *UseCase) record(ctx context.Context, actorID, action, subjectID string) {
	if uc.audit == nil {
		return
	}
	entry := domain.AuditEntry{
		ActorID:   actorID,
		Entity:    domain.AuditEntityAuth,
		Action:    action,
		SubjectID: subjectID,
	}
	if err := uc.audit.Record(ctx, entry); err != nil {
		uc.logger.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}
