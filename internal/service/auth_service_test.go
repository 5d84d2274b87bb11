package service

import (
	"context"
	"testing"
	"time"

	"edu-quiz/internal/config"
	"edu-quiz/internal/domain"
	"edu-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWT: config.JWTConfig{
			SecretKey:       "testsecretkeydontuseinproduction32bytes!",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		DemoEmail:    "demo@example.com",
		DemoPassword: "demo123",
		DemoName:     "Demo Öğretmen",
	}
}

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	svc, err := NewAuthService(testAuthConfig())
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWT.SecretKey = ""
	_, err := NewAuthService(cfg)
	assert.Error(t, err)
}

func TestAuthService_Login(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, "  Demo@Example.com ", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "demo", resp.User.ID)
	assert.Equal(t, "demo@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateJWT(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	assert.Equal(t, "demo", claims.UserID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "demo@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))
}

func TestAuthService_ValidateJWT_Expired(t *testing.T) {
	svc := newTestAuthService(t)
	token, err := svc.CreateJWT(context.Background(), &domain.User{ID: "demo"}, -time.Minute, tokenTypeAccess)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_ValidateJWT_WrongSecret(t *testing.T) {
	other := testAuthConfig()
	other.JWT.SecretKey = "a-completely-different-secret-key-value"
	otherSvc, err := NewAuthService(other)
	require.NoError(t, err)
	token, err := otherSvc.CreateJWT(context.Background(), &domain.User{ID: "demo"}, time.Minute, tokenTypeAccess)
	require.NoError(t, err)

	_, err = newTestAuthService(t).ValidateJWT(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	refresh, err := svc.CreateJWT(ctx, &domain.User{ID: "demo"}, time.Hour, tokenTypeRefresh)
	require.NoError(t, err)

	access, newRefresh, err := svc.RefreshToken(ctx, refresh)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	claims, err = svc.ValidateJWT(ctx, newRefresh)
	require.NoError(t, err)
	assert.Equal(t, tokenTypeRefresh, claims.TokenType)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestAuthService(t)
	access, err := svc.CreateJWT(context.Background(), &domain.User{ID: "demo"}, time.Hour, tokenTypeAccess)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), access)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))
	assert.ErrorIs(t, err, ErrNotRefreshToken)
}

func TestAuthService_RefreshToken_UserNotFound(t *testing.T) {
	svc := newTestAuthService(t)
	refresh, err := svc.CreateJWT(context.Background(), &domain.User{ID: "user123"}, time.Hour, tokenTypeRefresh)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), refresh)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestAuthService_Register(t *testing.T) {
	resp, err := newTestAuthService(t).Register(context.Background(), &dto.RegisterRequest{
		Name: "Ayşe", Email: "ayse@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
}
