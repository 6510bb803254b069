package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"user-console/internal/config"
	domain "user-console/internal/domain/user"
	"user-console/pkg/jwt"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret: "test-secret",
		AccessTTL:    time.Minute,
		Issuer:       "user-console",
	}
}

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService(testConfig())

	token, err := svc.GenerateAccessToken(&domain.Identity{ID: "op-1", Email: "a@b.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "op-1", claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
	require.Equal(t, "user-console", claims.Issuer)
}

func TestService_WrongSecretRejected(t *testing.T) {
	issuer := jwt.NewService(testConfig())
	token, err := issuer.GenerateAccessToken(&domain.Identity{ID: "op-1"})
	require.NoError(t, err)

	other := testConfig()
	other.AccessSecret = "another-secret"
	_, err = jwt.NewService(other).ParseAccessToken(token)
	require.Error(t, err)
}

func TestService_WrongIssuerRejected(t *testing.T) {
	issuer := jwt.NewService(testConfig())
	token, err := issuer.GenerateAccessToken(&domain.Identity{ID: "op-1"})
	require.NoError(t, err)

	other := testConfig()
	other.Issuer = "another-console"
	_, err = jwt.NewService(other).ParseAccessToken(token)
	require.Error(t, err)
}

func TestService_ExpiredTokenRejected(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTTL = -time.Minute

	svc := jwt.NewService(cfg)
	token, err := svc.GenerateAccessToken(&domain.Identity{ID: "op-1"})
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	require.Error(t, err)
}

func TestService_GarbageRejected(t *testing.T) {
	svc := jwt.NewService(testConfig())
	_, err := svc.ParseAccessToken("не-токен")
	require.Error(t, err)
}
