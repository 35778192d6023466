package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

const adminSubject = "admin"

// authService authenticates the single admin identity against a bcrypt hash
// and issues bearer tokens for mutating operations.
type authService struct {
	adapter      driven.AuthAdapter
	passwordHash string
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewAuthService creates a new AuthService. passwordHash is the bcrypt hash of
// the admin password.
func NewAuthService(adapter driven.AuthAdapter, passwordHash string, tokenTTL time.Duration) driving.AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		adapter:      adapter,
		passwordHash: passwordHash,
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}
}

// Login verifies the admin password and issues a signed token.
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if s.passwordHash == "" || !s.adapter.VerifyPassword(req.Password, s.passwordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL).Unix()
	token, err := s.adapter.GenerateToken(&domain.TokenClaims{
		Subject:   adminSubject,
		Admin:     true,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken checks a bearer token and returns its auth context.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrUnauthorized)
	}
	claims, err := s.adapter.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt < s.now().Unix() {
		return nil, domain.ErrTokenExpired
	}
	return &domain.AuthContext{
		Subject:   claims.Subject,
		Admin:     claims.Admin,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
