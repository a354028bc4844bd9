package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://env/db")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("HTTP_ADDRESS", ":7000")

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseEnv(c))

	assert.Equal(t, "postgres://env/db", c.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, ":7000", c.EndpointAddrHTTP)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 10, c.BcryptCost)
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("BCRYPT_COST", "ten")

	c := &Config{}
	err := parseEnv(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
