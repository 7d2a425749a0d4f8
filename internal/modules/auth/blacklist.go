package auth

import (
	"context"
	"time"

	"homewidget/internal/pkg/cache"

	"github.com/rs/zerolog/log"
)

const blacklistKeyPrefix = "token_blacklist:"

// Blacklist is the TTL-bound denylist of revoked access-token identifiers.
//
// Both operations fail open: on any store error a revocation is dropped with
// a warning and a lookup reports "not revoked". Access tokens are
// short-lived, so the exposure window of a missed revocation is bounded,
// whereas failing closed would take down all authenticated traffic on a
// cache outage. This is a contract-level policy, not a swallowed error.
type Blacklist struct {
	store cache.Store
	now   func() time.Time
}

func NewBlacklist(store cache.Store) *Blacklist {
	return &Blacklist{store: store, now: time.Now}
}

// NewBlacklistWithClock builds a blacklist with an injectable clock for TTL
// boundary tests.
func NewBlacklistWithClock(store cache.Store, now func() time.Time) *Blacklist {
	return &Blacklist{store: store, now: now}
}

// Revoke records jti until expiresAt. The TTL is the remaining lifetime of
// the shadowed access token, clamped at zero; after natural expiry a
// lingering entry is harmless.
func (b *Blacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) {
	ttl := expiresAt.Sub(b.now())
	if ttl < 0 {
		ttl = 0
	}

	if err := b.store.Set(ctx, blacklistKeyPrefix+jti, ttl); err != nil {
		log.Warn().Err(err).Str("jti", jti).Msg("blacklist set failed")
		return
	}
	log.Info().Str("jti", jti).Dur("ttl", ttl).Msg("access token blacklisted")
}

// IsRevoked reports whether jti is on the denylist.
func (b *Blacklist) IsRevoked(ctx context.Context, jti string) bool {
	hit, err := b.store.Exists(ctx, blacklistKeyPrefix+jti)
	if err != nil {
		log.Warn().Err(err).Str("jti", jti).Msg("blacklist lookup failed")
		return false
	}
	if hit {
		log.Info().Str("jti", jti).Msg("blacklist hit")
	}
	return hit
}
