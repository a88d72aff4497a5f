package auth

import (
	"context"
	"testing"
	"time"

	"campaign-server/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			Provider:        "stub",
			JWTSecret:       "0123456789abcdef0123456789abcdef",
			TokenExpiration: time.Hour,
		},
		Server: config.ServerConfig{URL: "http://localhost:8080"},
	}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func TestJWTRoundTrip(t *testing.T) {
	setTestConfig(t)

	user := &User{
		ID:    "4f6c2f0e-0c0a-4c40-9d2a-1a9c7b1f2e3d",
		Name:  "Game Master",
		Email: "gm@localhost",
	}

	token, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, user.Email, claims.Email)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	setTestConfig(t)

	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestStubProviderAuthenticate(t *testing.T) {
	setTestConfig(t)

	p := NewStubProvider()

	identity, err := p.Authenticate(context.Background(), "stub")
	require.NoError(t, err)
	assert.Equal(t, "stub-user", identity.Subject)
	assert.NotEmpty(t, identity.Email)

	_, err = p.Authenticate(context.Background(), "something-else")
	assert.Error(t, err)
}

func TestLoginStateOneTimeUse(t *testing.T) {
	state, err := GenerateLoginState("test-agent")
	require.NoError(t, err)

	require.NoError(t, ValidateLoginState(state, "test-agent"))
	assert.Error(t, ValidateLoginState(state, "test-agent"))
	assert.Error(t, ValidateLoginState("", "test-agent"))
}
