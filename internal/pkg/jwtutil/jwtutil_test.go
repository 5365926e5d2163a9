package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", time.Minute, "alice")
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseWithWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", time.Minute, "alice")
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	token, err := GenerateToken("secret", -time.Minute, "alice")
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}
