package driving

import (
	"context"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

// AuthService authenticates the single admin identity and validates tokens.
type AuthService interface {
	// Login verifies the admin password and issues a bearer token.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken checks a bearer token and returns its auth context.
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
