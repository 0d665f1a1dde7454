package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/config"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// ListingCache is a best-effort cache of single listings. Implementations
// swallow and log their own failures. After Invalidate(id), Set for that id
// must be ignored for at least as long as an entry would live.
type ListingCache interface {
	Get(ctx context.Context, id string) (*domain.Listing, bool)
	Set(ctx context.Context, listing *domain.Listing)
	Invalidate(ctx context.Context, id string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.Listing, bool) { return nil, false }
func (noopCache) Set(context.Context, *domain.Listing)                {}
func (noopCache) Invalidate(context.Context, string)                  {}

// CreateListingInput carries the fields of a new listing. A nil Price means
// the field was absent; zero is a valid price.
type CreateListingInput struct {
	Title       string
	Description string
	Price       *float64
	Location    string
	Status      string
}

// Pagination describes a page of a list result.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// ListingResult is one page of listings.
type ListingResult struct {
	Listings   []*domain.Listing
	Pagination Pagination
}

// ListingService manages property listings.
type ListingService interface {
	// Create persists a new listing owned by actorID.
	Create(ctx context.Context, actorID string, input CreateListingInput) (*domain.Listing, error)

	// List returns active listings matching query, newest first, with owners
	// populated. Zero page or limit take the configured defaults; limit is
	// capped at the configured maximum.
	List(ctx context.Context, query store.ListingQuery) (*ListingResult, error)

	// Get returns an active listing with its owner populated.
	Get(ctx context.Context, id string) (*domain.Listing, error)

	// Update applies patch to a listing owned by actorID.
	Update(ctx context.Context, actorID, id string, patch domain.ListingPatch) (*domain.Listing, error)

	// Delete soft-deletes a listing owned by actorID.
	Delete(ctx context.Context, actorID, id string) error

	// AdminDelete soft-deletes any active listing.
	AdminDelete(ctx context.Context, id string) error
}

type listingServiceImpl struct {
	listings   store.ListingStore
	accounts   store.AccountStore
	cache      ListingCache
	pagination config.PaginationConfig
	logger     *slog.Logger
}

var _ ListingService = (*listingServiceImpl)(nil)

// NewListingService creates a ListingService. cache may be nil.
func NewListingService(
	listings store.ListingStore,
	accounts store.AccountStore,
	cache ListingCache,
	pagination config.PaginationConfig,
	log *slog.Logger,
) (ListingService, error) {
	if listings == nil || accounts == nil {
		return nil, errors.New("listing and account stores cannot be nil")
	}
	if pagination.DefaultLimit <= 0 {
		pagination.DefaultLimit = 10
	}
	if pagination.MaxLimit < pagination.DefaultLimit {
		pagination.MaxLimit = pagination.DefaultLimit
	}
	if cache == nil {
		cache = noopCache{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &listingServiceImpl{
		listings:   listings,
		accounts:   accounts,
		cache:      cache,
		pagination: pagination,
		logger:     log.With(slog.String("component", "listing_service")),
	}, nil
}

func (s *listingServiceImpl) Create(ctx context.Context, actorID string, input CreateListingInput) (*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(input.Title) == "" || input.Price == nil || strings.TrimSpace(input.Location) == "" {
		return nil, domain.NewValidationError("", MsgListingFieldsRequired)
	}

	var status domain.ListingStatus
	if input.Status != "" {
		parsed, err := domain.ParseListingStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	listing, err := domain.NewListing(actorID, input.Title, input.Description, *input.Price, input.Location, status)
	if err != nil {
		return nil, err
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, NewServiceError("create_listing", "failed to save listing", err)
	}

	log.Info("listing created",
		slog.String("listing_id", listing.ID),
		slog.String("owner_id", actorID))
	return listing, nil
}

func (s *listingServiceImpl) List(ctx context.Context, query store.ListingQuery) (*ListingResult, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = s.pagination.DefaultLimit
	}
	if query.Limit > s.pagination.MaxLimit {
		query.Limit = s.pagination.MaxLimit
	}

	page, err := s.listings.List(ctx, query)
	if err != nil {
		return nil, NewServiceError("list_listings", "failed to query listings", err)
	}
	if err := s.populateOwners(ctx, page.Listings...); err != nil {
		return nil, err
	}

	pages := page.Total / int64(query.Limit)
	if page.Total%int64(query.Limit) != 0 {
		pages++
	}

	return &ListingResult{
		Listings: page.Listings,
		Pagination: Pagination{
			Total: page.Total,
			Page:  query.Page,
			Limit: query.Limit,
			Pages: pages,
		},
	}, nil
}

func (s *listingServiceImpl) Get(ctx context.Context, id string) (*domain.Listing, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		return cached, nil
	}

	listing, err := s.getActive(ctx, "get_listing", id)
	if err != nil {
		return nil, err
	}
	if err := s.populateOwners(ctx, listing); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, listing)
	return listing, nil
}

func (s *listingServiceImpl) Update(ctx context.Context, actorID, id string, patch domain.ListingPatch) (*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	listing, err := s.getActive(ctx, "update_listing", id)
	if err != nil {
		return nil, err
	}
	if !listing.OwnedBy(actorID) {
		log.Warn("update rejected: not owner",
			slog.String("listing_id", id),
			slog.String("actor_id", actorID))
		return nil, ErrUpdateNotOwned
	}
	if patch.Empty() {
		return listing, nil
	}

	if err := patch.Apply(listing); err != nil {
		return nil, err
	}

	if err := s.listings.Update(ctx, listing); err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			return nil, store.ErrListingNotFound
		}
		return nil, NewServiceError("update_listing", "failed to save listing", err)
	}
	s.cache.Invalidate(ctx, id)

	log.Info("listing updated", slog.String("listing_id", id))
	return listing, nil
}

func (s *listingServiceImpl) Delete(ctx context.Context, actorID, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	listing, err := s.getActive(ctx, "delete_listing", id)
	if err != nil {
		return err
	}
	if !listing.OwnedBy(actorID) {
		log.Warn("delete rejected: not owner",
			slog.String("listing_id", id),
			slog.String("actor_id", actorID))
		return ErrDeleteNotOwned
	}

	return s.softDelete(ctx, "delete_listing", id)
}

func (s *listingServiceImpl) AdminDelete(ctx context.Context, id string) error {
	return s.softDelete(ctx, "admin_delete_listing", id)
}

func (s *listingServiceImpl) softDelete(ctx context.Context, op, id string) error {
	if err := s.listings.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			return store.ErrListingNotFound
		}
		return NewServiceError(op, "failed to delete listing", err)
	}
	s.cache.Invalidate(ctx, id)

	logger.FromContextOrDefault(ctx, s.logger).Info("listing deleted",
		slog.String("listing_id", id),
		slog.String("operation", op))
	return nil
}

// getActive loads an active listing, passing not-found through unwrapped.
func (s *listingServiceImpl) getActive(ctx context.Context, op, id string) (*domain.Listing, error) {
	listing, err := s.listings.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			return nil, store.ErrListingNotFound
		}
		return nil, NewServiceError(op, "failed to load listing", err)
	}
	return listing, nil
}

// populateOwners attaches owner summaries in one batch lookup. Listings
// whose owner no longer resolves are left without one.
func (s *listingServiceImpl) populateOwners(ctx context.Context, listings ...*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(listings))
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		if _, ok := seen[l.CreatedBy]; !ok {
			seen[l.CreatedBy] = struct{}{}
			ids = append(ids, l.CreatedBy)
		}
	}

	owners, err := s.accounts.GetByIDs(ctx, ids)
	if err != nil {
		return NewServiceError("populate_owners", "failed to load owners", err)
	}
	for _, l := range listings {
		if owner, ok := owners[l.CreatedBy]; ok {
			l.Owner = owner.Summary()
		}
	}
	return nil
}
