package driven

import "github.com/mutabaa-labs/mutabaa-core/internal/core/domain"

// AuthAdapter handles password hashing and token signing.
type AuthAdapter interface {
	// HashPassword generates a hash from a plaintext password.
	HashPassword(password string) (string, error)

	// VerifyPassword checks a password against a stored hash.
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed token from claims.
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ParseToken validates a token and extracts claims.
	ParseToken(token string) (*domain.TokenClaims, error)
}
