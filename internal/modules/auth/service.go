package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"homewidget/internal/domain"
	"homewidget/internal/pkg/password"
	"homewidget/internal/pkg/token"
	"homewidget/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service orchestrates the session lifecycle: login issues an access/refresh
// pair, refresh rotates the pair under a per-digest single-flight lock, and
// logout blacklists the presented access token.
//
// Logout is presentation-scoped by design: it revokes only the presented
// access token, the paired refresh token stays valid until rotated or
// expired. Session-wide revocation would need a shared session id linking
// the pair, which this model does not carry.
type Service struct {
	users     UserRepositoryInterface
	tokens    RefreshTokenRepositoryInterface
	codec     TokenCodec
	blacklist *Blacklist
	locks     *LockManager

	accessTTL  time.Duration
	refreshTTL time.Duration

	now func() time.Time
}

// TokenPair is the credential set handed to a client on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	Role         domain.UserRole
}

func NewService(
	users UserRepositoryInterface,
	tokens RefreshTokenRepositoryInterface,
	codec TokenCodec,
	blacklist *Blacklist,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		codec:      codec,
		blacklist:  blacklist,
		locks:      NewLockManager(),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Test hook for expiry boundaries.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register creates a new account with role common.
func (s *Service) Register(ctx context.Context, email, plainPassword string) (*domain.User, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         domain.RoleCommon,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login authenticates email+password and issues a fresh token pair.
// Unknown user and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !password.Verify(plainPassword, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrInactiveUser
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Int64("user_id", user.ID).Msg("login success")
	return user, pair, nil
}

// Refresh rotates the presented refresh token and issues a new pair.
// Rotation attempts for the same digest are fully serialized; under N
// concurrent calls with the same token exactly one succeeds and the rest
// observe ErrInvalidRefreshToken. Not-found, expired and already-rotated
// tokens are indistinguishable to the caller.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*domain.User, *TokenPair, error) {
	digest := s.codec.Digest(rawToken)

	var (
		user *domain.User
		pair *TokenPair
	)

	err := s.locks.WithLock(digest, func() error {
		rotated, err := s.tokens.RevokeActive(ctx, digest, s.now())
		if err != nil {
			if errors.Is(err, repository.ErrNoActiveToken) {
				return ErrInvalidRefreshToken
			}
			return err
		}

		user, err = s.users.GetByID(ctx, rotated.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}
		if !user.IsActive {
			return ErrInvalidRefreshToken
		}

		pair, err = s.issueTokens(ctx, user)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info().Int64("user_id", user.ID).Msg("refresh token rotated")
	return user, pair, nil
}

// Logout blacklists the presented access token until its natural expiry.
// Cache outages never surface to the caller (fail-open).
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.codec.Verify(accessToken)
	if err != nil {
		return token.ErrInvalidToken
	}
	if claims.TokenType != token.TypeAccess || claims.JTI == "" {
		return token.ErrInvalidToken
	}

	s.blacklist.Revoke(ctx, claims.JTI, claims.ExpiresAt)
	return nil
}

// CurrentUser loads the account behind an already-resolved identity.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, err := s.codec.Issue(user.Email, s.accessTTL, token.TypeAccess, map[string]any{
		"role": string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	raw, err := token.NewOpaqueToken()
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Create(ctx, &domain.RefreshToken{
		UserID:      user.ID,
		TokenDigest: s.codec.Digest(raw),
		ExpiresAt:   s.now().Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: raw,
		ExpiresIn:    int(s.accessTTL.Seconds()),
		Role:         user.Role,
	}, nil
}
