package store

import (
	"context"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// Create saves a new account and sets its ID.
	// Returns ErrEmailExists if the email is already taken, including when a
	// concurrent registration wins the race on the unique index.
	Create(ctx context.Context, account *domain.Account) error

	// GetByEmail retrieves an account by exact email match.
	// Returns ErrAccountNotFound if no account has that email.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// GetByIDs retrieves the accounts with the given IDs, keyed by ID.
	// Unknown or malformed IDs are silently absent from the result.
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error)
}
