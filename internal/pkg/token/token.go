// Package token creates and verifies the two credential kinds used by the
// session subsystem: signed, time-bound JWT access tokens and keyed digests
// of opaque refresh tokens.
package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	// ErrInvalidToken is the single verification failure. Expired, forged,
	// malformed, wrong-algorithm and whitespace-wrapped tokens all collapse
	// into it so callers cannot build an oracle out of the distinction.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSubject marks a programming error: minting a token with no
	// identifiable subject.
	ErrMissingSubject = errors.New("token subject missing")
)

// reserved claim keys that extra claims may never override.
var reservedClaims = map[string]struct{}{
	"sub": {}, "exp": {}, "type": {}, "jti": {},
}

// Claims is the verified content of an access or refresh JWT.
type Claims struct {
	Subject   string
	TokenType string
	JTI       string
	ExpiresAt time.Time
}

// Codec signs and verifies tokens with a server-held symmetric key (HS256).
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// NewCodecWithClock builds a codec with an injectable clock for expiry
// boundary tests.
func NewCodecWithClock(secret string, now func() time.Time) *Codec {
	return &Codec{secret: []byte(secret), now: now}
}

// Issue mints a signed token for subject with the given lifetime and type.
// Access tokens receive a freshly generated unique jti. Extra claims are
// merged after filtering reserved keys (sub, exp, type, jti).
func (c *Codec) Issue(subject string, ttl time.Duration, tokenType string, extra map[string]any) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", ErrMissingSubject
	}

	claims := jwtlib.MapClaims{
		"sub":  subject,
		"exp":  c.now().Add(ttl).Unix(),
		"type": tokenType,
	}
	if tokenType == TypeAccess {
		claims["jti"] = uuid.NewString()
	}
	for k, v := range extra {
		if _, ok := reservedClaims[k]; ok {
			continue
		}
		claims[k] = v
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks signature, algorithm and expiry, returning the claims or
// ErrInvalidToken. Tokens with leading/trailing whitespace are rejected even
// when the inner token would decode, to block header smuggling.
func (c *Codec) Verify(raw string) (*Claims, error) {
	if raw == "" || raw != strings.TrimSpace(raw) {
		return nil, ErrInvalidToken
	}

	claims := jwtlib.MapClaims{}
	parsed, err := jwtlib.ParseWithClaims(raw, claims, func(t *jwtlib.Token) (any, error) {
		return c.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	tokenType, _ := claims["type"].(string)
	if sub == "" || tokenType == "" {
		return nil, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	jti, _ := claims["jti"].(string)

	return &Claims{
		Subject:   sub,
		TokenType: tokenType,
		JTI:       jti,
		ExpiresAt: exp.Time,
	}, nil
}

// NewOpaqueToken generates a high-entropy opaque refresh token: 32 random
// bytes, URL-safe base64 without padding.
func NewOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("opaque token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Digest computes the hex HMAC-SHA256 digest of a raw refresh token under
// the server secret. Only digests are persisted, and the keyed hash means a
// database leak alone does not allow constructing valid lookups.
func (c *Codec) Digest(raw string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
