package api

import (
	"log/slog"
	"net/http"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/api/shared"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service"
)

// ListingHandler handles property listing requests.
type ListingHandler struct {
	listings service.ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// List handles GET /api/properties.
//
// @Summary List properties
// @Description Returns active properties, newest first, with owner summaries.
// @Tags properties
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param status query string false "available or sold"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param search query string false "Case-insensitive match on title or location"
// @Success 200 {object} ListingsResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/properties [get]
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := parseListingQuery(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	result, err := h.listings.List(r.Context(), query)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListingsResponse{
		Properties: result.Listings,
		Pagination: result.Pagination,
	})
}

// Get handles GET /api/properties/{id}.
//
// @Summary Get a property
// @Tags properties
// @Produce json
// @Param id path string true "Property id"
// @Success 200 {object} ListingResponse
// @Failure 404 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/properties/{id} [get]
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.Get(r.Context(), pathID(r))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ListingResponse{Property: listing})
}

// Create handles POST /api/properties.
//
// @Summary Create a property
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateListingRequest true "Property"
// @Success 201 {object} ListingMutationResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 401 {object} shared.ErrorResponse
// @Failure 403 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/properties [post]
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req CreateListingRequest
	if !decodeRequest(w, r, &req, service.MsgListingFieldsRequired) {
		return
	}

	listing, err := h.listings.Create(r.Context(), actorID, service.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ListingMutationResponse{
		Message:  "Property created successfully",
		Property: listing,
	})
}

// Update handles PUT /api/properties/{id}.
//
// @Summary Update own property
// @Description Partial update; absent fields are unchanged.
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property id"
// @Param body body UpdateListingRequest true "Fields to change"
// @Success 200 {object} ListingMutationResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 401 {object} shared.ErrorResponse
// @Failure 403 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/properties/{id} [put]
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	listing, err := h.listings.Update(r.Context(), actorID, pathID(r), patch)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListingMutationResponse{
		Message:  "Property updated successfully",
		Property: listing,
	})
}

// Delete handles DELETE /api/properties/{id}.
//
// @Summary Delete own property
// @Description Soft delete; the property disappears from every read.
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property id"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} shared.ErrorResponse
// @Failure 403 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/properties/{id} [delete]
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	if err := h.listings.Delete(r.Context(), actorID, pathID(r)); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Property deleted successfully"})
}

// AdminDelete handles DELETE /api/properties/admin/{id}.
//
// @Summary Delete any property
// @Description Admin-only soft delete without an ownership check.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property id"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} shared.ErrorResponse
// @Failure 403 {object} shared.ErrorResponse
// @Failure 404 {object} shared.ErrorResponse
// @Failure 500 {object} shared.ErrorResponse
// @Router /api/properties/admin/{id} [delete]
func (h *ListingHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.listings.AdminDelete(r.Context(), pathID(r)); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Property deleted successfully"})
}

// actor returns the authenticated account id, answering 401 when the
// route was mounted without the auth middleware.
func (h *ListingHandler) actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorID, ok := actorIDFromContext(r)
	if !ok {
		logger.FromContext(r.Context()).Warn("no account in request context", slog.String("path", r.URL.Path))
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User not authenticated")
		return "", false
	}
	return actorID, true
}
