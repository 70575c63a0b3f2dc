package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suteetoe/catalogadmin/pkg/config"
)

func TestTokenRoundTrip(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateToken("operator@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateRejectsGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "key-one", ExpirationHours: 1})
	token, err := GenerateToken("operator@example.com", "admin")
	require.NoError(t, err)

	Initialize(&config.JWTConfig{SigningKey: "key-two", ExpirationHours: 1})
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
