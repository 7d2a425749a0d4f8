package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	encoded, err := Hash("Secret123!")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))
	assert.True(t, Verify("Secret123!", encoded))
	assert.False(t, Verify("secret123!", encoded))
	assert.False(t, Verify("", encoded))
}

func TestHash_UniqueSalt(t *testing.T) {
	a, err := Hash("Secret123!")
	require.NoError(t, err)
	b, err := Hash("Secret123!")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, Verify("Secret123!", a))
	assert.True(t, Verify("Secret123!", b))
}

func TestVerify_MalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"not-a-hash",
		"$bcrypt$whatever",
		"$argon2id$v=19$m=65536,t=1,p=4$short",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=0,t=1,p=4$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5",
	} {
		assert.False(t, Verify("Secret123!", encoded), "hash %q should not verify", encoded)
	}
}

func TestVerify_ExcessiveCostParamsRejected(t *testing.T) {
	// A stored hash demanding far more memory than we ever produce is
	// treated as invalid instead of being computed.
	encoded := "$argon2id$v=19$m=1048576,t=1,p=4$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5"
	assert.False(t, Verify("Secret123!", encoded))
}
