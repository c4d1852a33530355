package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlelemonco/littlelemon-backend/pkg/config"
)

func testParams() config.PasswordConfig {
	// Small parameters keep the test fast; clamps still apply.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("lemon-curd-42", testParams())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := VerifyPassword("lemon-curd-42", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same-password", testParams())
	require.NoError(t, err)
	second, err := HashPassword("same-password", testParams())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestEmptyPasswordRejected(t *testing.T) {
	_, err := HashPassword("", testParams())
	require.Error(t, err)
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	cases := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=8,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8,t=1$c2FsdA$aGFzaA",
	}
	for _, encoded := range cases {
		_, err := VerifyPassword("password", encoded)
		assert.ErrorIs(t, err, ErrInvalidHash, encoded)
	}
}
