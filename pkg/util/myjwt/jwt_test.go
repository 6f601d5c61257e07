package myjwt

import (
	"testing"
	"time"

	"Nexus/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJwtConfig(t *testing.T) {
	t.Helper()
	conf := config.GetConfig()
	conf.JwtConfig.Key = "test-secret"
	conf.JwtConfig.ExpireHours = 1
	conf.JwtConfig.Issuer = "nexus-test"
}

func TestGenerateAndParseRoundTrip(t *testing.T) {
	setupJwtConfig(t)

	token, err := GenerateToken("u-123", "alice@x.com")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-123", claims.Uuid)
	assert.Equal(t, "alice@x.com", claims.Username)
	assert.Equal(t, "nexus-test", claims.Issuer)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	setupJwtConfig(t)

	token, err := GenerateToken("u-123", "alice@x.com")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	require.Error(t, err)
}

func TestIssuedWithin(t *testing.T) {
	now := time.Now()
	claims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now.Add(-2 * time.Minute)),
		},
	}
	assert.True(t, IssuedWithin(claims, 5*time.Minute))
	assert.False(t, IssuedWithin(claims, time.Minute))
	assert.False(t, IssuedWithin(nil, time.Hour))
	assert.False(t, IssuedWithin(&CustomClaims{}, time.Hour))
}
