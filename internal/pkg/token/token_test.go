package token

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_AccessToken(t *testing.T) {
	codec := NewCodec("test-secret")

	raw, err := codec.Issue("a@example.com", time.Hour, TypeAccess, map[string]any{"role": "common"})
	require.NoError(t, err)

	claims, err := codec.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", claims.Subject)
	assert.Equal(t, TypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestIssue_EmptySubject(t *testing.T) {
	codec := NewCodec("test-secret")

	_, err := codec.Issue("", time.Hour, TypeAccess, nil)
	assert.ErrorIs(t, err, ErrMissingSubject)

	_, err = codec.Issue("   ", time.Hour, TypeAccess, nil)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestIssue_UniqueJTIPerToken(t *testing.T) {
	codec := NewCodec("test-secret")
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		raw, err := codec.Issue("a@example.com", time.Hour, TypeAccess, nil)
		require.NoError(t, err)
		claims, err := codec.Verify(raw)
		require.NoError(t, err)
		assert.False(t, seen[claims.JTI], "jti %q issued twice", claims.JTI)
		seen[claims.JTI] = true
	}
}

func TestIssue_ReservedClaimsNotOverridable(t *testing.T) {
	codec := NewCodec("test-secret")

	raw, err := codec.Issue("a@example.com", time.Hour, TypeAccess, map[string]any{
		"sub":  "attacker@example.com",
		"type": TypeRefresh,
		"jti":  "forged",
		"exp":  time.Now().Add(100 * time.Hour).Unix(),
	})
	require.NoError(t, err)

	claims, err := codec.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", claims.Subject)
	assert.Equal(t, TypeAccess, claims.TokenType)
	assert.NotEqual(t, "forged", claims.JTI)
	assert.True(t, claims.ExpiresAt.Before(time.Now().Add(2*time.Hour)))
}

func TestVerify_WhitespaceWrapped(t *testing.T) {
	codec := NewCodec("test-secret")
	raw, err := codec.Issue("a@example.com", time.Hour, TypeAccess, nil)
	require.NoError(t, err)

	for _, wrapped := range []string{" " + raw, raw + " ", "\t" + raw, raw + "\n"} {
		_, err := codec.Verify(wrapped)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewCodec("secret-a").Issue("a@example.com", time.Hour, TypeAccess, nil)
	require.NoError(t, err)

	_, err = NewCodec("secret-b").Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_ExpiryBoundary(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	codec := NewCodecWithClock("test-secret", func() time.Time { return clock })

	raw, err := codec.Issue("a@example.com", 30*time.Minute, TypeAccess, nil)
	require.NoError(t, err)

	// One second before expiry: valid.
	clock = base.Add(30*time.Minute - time.Second)
	_, err = codec.Verify(raw)
	assert.NoError(t, err)

	// One second past expiry: invalid.
	clock = base.Add(30*time.Minute + time.Second)
	_, err = codec.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_UnsignedAlgorithmRejected(t *testing.T) {
	codec := NewCodec("test-secret")

	unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{
		"sub":  "a@example.com",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"type": TypeAccess,
		"jti":  "x",
	})
	raw, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingExpiryRejected(t *testing.T) {
	secret := []byte("test-secret")
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":  "a@example.com",
		"type": TypeAccess,
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewCodec("test-secret").Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	codec := NewCodec("test-secret")
	for _, raw := range []string{"", "abc", "a.b.c", "not a token at all"} {
		_, err := codec.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewOpaqueToken(t *testing.T) {
	a, err := NewOpaqueToken()
	require.NoError(t, err)
	b, err := NewOpaqueToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), 40)
	assert.NotContains(t, a, "=")
}

func TestDigest(t *testing.T) {
	codec := NewCodec("test-secret")

	d1 := codec.Digest("some-refresh-token")
	d2 := codec.Digest("some-refresh-token")
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)

	assert.NotEqual(t, d1, codec.Digest("other-token"))

	// Digest is keyed: a different secret yields a different digest.
	other := NewCodec("other-secret")
	assert.NotEqual(t, d1, other.Digest("some-refresh-token"))
}
