package auth

import (
	"context"
	"time"

	"homewidget/internal/domain"
	"homewidget/internal/pkg/token"
)

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RefreshTokenRepositoryInterface is the storage for refresh token digests.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	RevokeActive(ctx context.Context, digest string, now time.Time) (*domain.RefreshToken, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenCodec mints and verifies access tokens and digests refresh tokens.
type TokenCodec interface {
	Issue(subject string, ttl time.Duration, tokenType string, extra map[string]any) (string, error)
	Verify(raw string) (*token.Claims, error)
	Digest(raw string) string
}
