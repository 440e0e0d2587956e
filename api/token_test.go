package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenRoundTrip 签发的令牌可以解析回原始声明
func TestTokenRoundTrip(t *testing.T) {
	require.NoError(t, TokenInit("test-secret-key", "30m"))

	token, expiry, err := GenerateToken("editor", 7, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiry, 5*time.Second)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims["username"])
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
}

// TestParse_BearerPrefix Bearer 前缀被接受
func TestParse_BearerPrefix(t *testing.T) {
	require.NoError(t, TokenInit("test-secret-key", "30m"))

	token, _, err := GenerateToken("editor", 7, "user")
	require.NoError(t, err)

	claims, err := Parse("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims["username"])
}

// TestParse_InvalidToken 篡改过的令牌被拒绝
func TestParse_InvalidToken(t *testing.T) {
	require.NoError(t, TokenInit("test-secret-key", "30m"))

	_, err := Parse("not-a-token")
	assert.Error(t, err)

	token, _, err := GenerateToken("editor", 7, "user")
	require.NoError(t, err)
	_, err = Parse(token + "tampered")
	assert.Error(t, err)
}

// TestTokenInit_Validation 非法配置被拒绝
func TestTokenInit_Validation(t *testing.T) {
	assert.Error(t, TokenInit("", "30m"))
	assert.Error(t, TokenInit("secret", "not-a-duration"))
}
