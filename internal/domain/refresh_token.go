package domain

import "time"

// RefreshToken stores outstanding refresh credentials.
//
// Security notes:
//   - The raw token is never stored, only its keyed HMAC-SHA256 digest
//     (TokenDigest), so a database leak alone cannot be used to look up
//     or forge valid tokens.
//   - On refresh we rotate: the matching row is revoked atomically and a
//     new row is created. Revoked is never flipped back to false.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	TokenDigest string `json:"-" gorm:"size:64;uniqueIndex;not null"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	Revoked   bool      `json:"revoked" gorm:"default:false;index"`
}

// IsActive reports whether the token may still be rotated at the given
// instant. Expiry is strict: a token whose ExpiresAt equals now is expired.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.Revoked && t.ExpiresAt.After(now)
}
