package domain

import (
	"strings"
	"time"
)

// ListingStatus is the market state of a listing. It has no transition rules.
type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusSold      ListingStatus = "sold"
)

// Valid reports whether s is a known status.
func (s ListingStatus) Valid() bool {
	return s == StatusAvailable || s == StatusSold
}

// ParseListingStatus converts a raw value into a ListingStatus.
func ParseListingStatus(raw string) (ListingStatus, error) {
	s := ListingStatus(raw)
	if !s.Valid() {
		return "", &ValidationError{Field: "status", Message: "Status must be available or sold", Err: ErrInvalidStatus}
	}
	return s, nil
}

// Owner is the public summary of the account that created a listing.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Listing is a property offered by an agent. Once IsDeleted is set the
// listing is invisible to every read path but stays persisted.
type Listing struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Location    string        `json:"location"`
	Status      ListingStatus `json:"status"`
	CreatedBy   string        `json:"createdBy"`
	Owner       *Owner        `json:"owner,omitempty"`
	IsDeleted   bool          `json:"isDeleted"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// NewListing builds an active listing owned by ownerID. An empty status
// defaults to available.
func NewListing(ownerID, title, description string, price float64, location string, status ListingStatus) (*Listing, error) {
	if status == "" {
		status = StatusAvailable
	}
	now := time.Now().UTC()
	l := &Listing{
		Title:       strings.TrimSpace(title),
		Description: description,
		Price:       price,
		Location:    strings.TrimSpace(location),
		Status:      status,
		CreatedBy:   ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks if the Listing has valid data.
func (l *Listing) Validate() error {
	if l.Title == "" {
		return NewValidationError("title", "title is required")
	}
	if l.Location == "" {
		return NewValidationError("location", "location is required")
	}
	if l.CreatedBy == "" {
		return NewValidationError("createdBy", "owner is required")
	}
	if !l.Status.Valid() {
		return &ValidationError{Field: "status", Message: "Status must be available or sold", Err: ErrInvalidStatus}
	}
	return nil
}

// OwnedBy reports whether accountID created the listing.
func (l *Listing) OwnedBy(accountID string) bool {
	return l.CreatedBy == accountID
}

// ListingPatch holds a partial update. Nil fields are left unchanged.
type ListingPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Location    *string
	Status      *ListingStatus
}

// Empty reports whether the patch changes nothing.
func (p ListingPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil && p.Location == nil && p.Status == nil
}

// Apply copies the present fields onto l, re-validates, and bumps UpdatedAt.
// On error l is left unchanged.
func (p ListingPatch) Apply(l *Listing) error {
	next := *l
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Price != nil {
		next.Price = *p.Price
	}
	if p.Location != nil {
		next.Location = strings.TrimSpace(*p.Location)
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if err := next.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now().UTC()
	*l = next
	return nil
}
