package api

import (
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service"
)

// Request structures. A missing required field yields one message per
// endpoint regardless of which field is absent; the services repeat the
// check after trimming whitespace.

// RegisterRequest defines the payload for the account registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateListingRequest defines the payload for creating a listing.
// Price is a pointer so that an absent price is distinguishable from 0.
type CreateListingRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Status      string   `json:"status"`
}

// UpdateListingRequest defines the payload for a partial listing update.
// Absent fields are left unchanged.
type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Location    *string  `json:"location"`
	Status      *string  `json:"status"`
}

// toPatch converts the request into a domain patch, validating the status.
func (req UpdateListingRequest) toPatch() (domain.ListingPatch, error) {
	patch := domain.ListingPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
	}
	if req.Status != nil {
		status, err := domain.ParseListingStatus(*req.Status)
		if err != nil {
			return domain.ListingPatch{}, err
		}
		patch.Status = &status
	}
	return patch, nil
}

// Response structures

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse is returned by a successful registration.
type RegisterResponse struct {
	Message string          `json:"message"`
	User    *domain.Account `json:"user"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *domain.Account `json:"user"`
}

// ListingsResponse is one page of listings.
type ListingsResponse struct {
	Properties []*domain.Listing  `json:"properties"`
	Pagination service.Pagination `json:"pagination"`
}

// ListingResponse wraps a single listing.
type ListingResponse struct {
	Property *domain.Listing `json:"property"`
}

// ListingMutationResponse is returned by create and update.
type ListingMutationResponse struct {
	Message  string          `json:"message"`
	Property *domain.Listing `json:"property"`
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
}
