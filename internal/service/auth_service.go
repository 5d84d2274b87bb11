package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"edu-quiz/internal/config"
	"edu-quiz/internal/domain"
	"edu-quiz/internal/dto"
	"edu-quiz/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	demoUserID = "demo"
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrNotRefreshToken = errors.New("not a refresh token")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.MessageResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, newRefreshToken string, err error)
}

type authServiceImpl struct {
	cfg      config.AuthConfig
	demoUser *domain.User
}

// NewAuthService creates a new instance of AuthService backed by the single
// configured demo account.
func NewAuthService(cfg config.AuthConfig) (AuthService, error) {
	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	if cfg.DemoEmail == "" || cfg.DemoPassword == "" {
		return nil, errors.New("demo account credentials are not configured")
	}
	return &authServiceImpl{
		cfg:      cfg,
		demoUser: domain.NewUser(demoUserID, cfg.DemoEmail, cfg.DemoName),
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.demoUser.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.DemoPassword)) == 1
	if !emailOK || !passwordOK {
		logger.Get().Warn("Login rejected", zap.String("email", email))
		return nil, domain.NewUnauthorizedError("Invalid email or password")
	}

	accessToken, refreshToken, err := s.issuePair(ctx, s.demoUser)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("User logged in", zap.String("userID", s.demoUser.ID))
	return &dto.LoginResponse{
		TokenResponse: dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken},
		User: dto.UserResponse{
			ID:    s.demoUser.ID,
			Email: s.demoUser.Email,
			Name:  s.demoUser.Name,
		},
	}, nil
}

// Register accepts the request without creating an account; only the demo
// account can sign in.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.MessageResponse, error) {
	logger.Get().Info("Registration received", zap.String("email", strings.ToLower(req.Email)), zap.String("name", req.Name))
	return &dto.MessageResponse{Message: "Registration received"}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	claims := dto.AuthClaims{
		UserID:    user.ID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

func tokenSnippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return "", "", domain.NewError(domain.CodeUnauthorized, "Invalid refresh token", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", "", domain.NewError(domain.CodeUnauthorized, "Invalid refresh token", ErrNotRefreshToken)
	}
	if claims.UserID != s.demoUser.ID {
		logger.Get().Error("User not found for refresh token", zap.String("userID", claims.UserID))
		return "", "", domain.NewNotFoundError(fmt.Sprintf("User %s not found for refresh token", claims.UserID))
	}

	accessToken, refreshToken, err := s.issuePair(ctx, s.demoUser)
	if err != nil {
		return "", "", err
	}
	logger.Get().Info("JWT token refreshed", zap.String("userID", s.demoUser.ID))
	return accessToken, refreshToken, nil
}

func (s *authServiceImpl) issuePair(ctx context.Context, user *domain.User) (string, string, error) {
	accessToken, err := s.CreateJWT(ctx, user, s.cfg.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(ctx, user, s.cfg.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to create refresh token", err)
	}
	return accessToken, refreshToken, nil
}
