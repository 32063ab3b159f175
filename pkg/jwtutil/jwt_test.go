package jwtutil

import (
	"testing"
	"time"

	"sales-service/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	Initialize(&config.AuthConfig{SigningKey: "test-signing-key", TokenTTL: time.Hour})

	token, err := GenerateToken("backup-operator")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "backup-operator", claims.Subject)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	Initialize(&config.AuthConfig{SigningKey: "test-signing-key", TokenTTL: time.Hour})

	token, err := GenerateToken("operator")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	// A token signed under a different key must not validate.
	Initialize(&config.AuthConfig{SigningKey: "other-key", TokenTTL: time.Hour})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenRequiresKey(t *testing.T) {
	Initialize(&config.AuthConfig{})

	_, err := GenerateToken("operator")
	assert.Error(t, err)
}
