package security

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTokenConfig(t *testing.T, secret string, ttlHours int) {
	t.Helper()
	viper.Set("jwt.secret", secret)
	viper.Set("jwt.ttl_hours", ttlHours)
}

func TestMakeAndParseToken(t *testing.T) {
	setTokenConfig(t, "unit-test-secret", 1)

	token, err := MakeToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseTokenTampered(t *testing.T) {
	setTokenConfig(t, "unit-test-secret", 1)

	token, err := MakeToken(7)
	require.NoError(t, err)

	// Flip a character in the signature segment
	tampered := token[:len(token)-2] + "xx"
	_, err = ParseToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	setTokenConfig(t, "the-right-secret", 1)

	token, err := MakeToken(7)
	require.NoError(t, err)

	viper.Set("jwt.secret", "a-different-secret")
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	setTokenConfig(t, "unit-test-secret", -1)

	token, err := MakeToken(7)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	setTokenConfig(t, "unit-test-secret", 1)

	for _, tok := range []string{"", "not.a.jwt", strings.Repeat("a", 64)} {
		_, err := ParseToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
