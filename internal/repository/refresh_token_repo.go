package repository

import (
	"context"
	"errors"
	"time"

	"homewidget/internal/domain"

	"gorm.io/gorm"
)

// ErrNoActiveToken is returned by RevokeActive when no matching active
// (not revoked, not expired) record exists.
var ErrNoActiveToken = errors.New("no active refresh token")

// RefreshTokenRepository provides DB access for refresh tokens. Only token
// digests ever touch this layer; raw tokens stay in the auth service.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByDigest(ctx context.Context, digest string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token_digest = ?", digest).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RevokeActive atomically flips the active record for digest to revoked and
// returns it. The revoke is a single compare-and-swap UPDATE guarded by
// revoked = false and a strict expires_at > now check, so two writers racing
// on the same digest cannot both count the flip: the loser sees zero rows
// affected and gets ErrNoActiveToken. Works identically on postgres and
// sqlite (no row locks needed).
func (r *RefreshTokenRepository) RevokeActive(ctx context.Context, digest string, now time.Time) (*domain.RefreshToken, error) {
	var revoked *domain.RefreshToken

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.RefreshToken{}).
			Where("token_digest = ? AND revoked = ? AND expires_at > ?", digest, false, now).
			Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoActiveToken
		}

		var t domain.RefreshToken
		if err := tx.Where("token_digest = ?", digest).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveToken
			}
			return err
		}
		revoked = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revoked, nil
}

// DeleteExpired purges records that are expired or already revoked, and
// returns how many rows were removed.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked = ?", now, true).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
