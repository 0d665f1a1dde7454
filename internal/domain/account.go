package domain

import (
	"strings"
	"time"
)

// Role determines what an account may do with listings.
type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAgent || r == RoleAdmin
}

// Account represents a registered user. Accounts are immutable after
// registration.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewAccount builds an account ready to be persisted. The caller hashes the
// password; the store assigns the ID.
func NewAccount(name, email, passwordHash string, role Role) (*Account, error) {
	now := time.Now().UTC()
	a := &Account{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if a.Email == "" {
		return NewValidationError("email", "email is required")
	}
	if a.PasswordHash == "" {
		return NewValidationError("password", "password hash is required")
	}
	if !a.Role.Valid() {
		return &ValidationError{Field: "role", Message: "Role must be agent or admin", Err: ErrInvalidRole}
	}
	return nil
}

// Summary returns the public view of the account embedded in listing
// responses.
func (a *Account) Summary() *Owner {
	return &Owner{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
