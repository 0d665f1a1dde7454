package auth

import (
	"context"
	"time"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT carrying the account's id, email, and role.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, account *domain.Account) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken for expired tokens and ErrInvalidToken for any
	// other failure (bad signature, malformed token, unknown role).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the identity carried by an access token. The role is taken from
// the token as issued; it is not re-read from the store.
type Claims struct {
	AccountID string
	Email     string
	Role      domain.Role

	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
