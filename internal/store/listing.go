package store

import (
	"context"
	"math"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
)

// ListingFilter narrows a listing query. Zero values mean "no constraint".
type ListingFilter struct {
	Status   domain.ListingStatus
	MinPrice *float64
	MaxPrice *float64
	// Search is matched case-insensitively as a literal substring of title or location.
	Search string
}

// ListingQuery is a filtered page request. Page is 1-based.
type ListingQuery struct {
	Filter ListingFilter
	Page   int
	Limit  int
}

// Offset returns the number of records to skip for the requested page. It
// saturates at math.MaxInt, so a page far past the end yields an empty page.
func (q ListingQuery) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// ListingPage is one page of active listings plus the total number of
// active listings matching the filter.
type ListingPage struct {
	Listings []*domain.Listing
	Total    int64
}

// ListingStore defines the interface for listing persistence. Every read
// excludes soft-deleted listings.
type ListingStore interface {
	// Create saves a new listing and sets its ID.
	Create(ctx context.Context, listing *domain.Listing) error

	// GetActiveByID retrieves a listing that is not soft-deleted.
	// Returns ErrListingNotFound if it is missing, deleted, or the id is malformed.
	GetActiveByID(ctx context.Context, id string) (*domain.Listing, error)

	// Update persists the mutable fields (title, description, price,
	// location, status, updatedAt) of an active listing.
	// Returns ErrListingNotFound if the listing was deleted in the meantime.
	Update(ctx context.Context, listing *domain.Listing) error

	// SoftDelete marks an active listing as deleted.
	// Returns ErrListingNotFound if it is missing or already deleted.
	SoftDelete(ctx context.Context, id string) error

	// List returns active listings matching the query, newest first.
	List(ctx context.Context, query ListingQuery) (*ListingPage, error)
}
