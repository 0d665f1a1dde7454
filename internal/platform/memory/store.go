// Package memory provides in-process implementations of the store
// interfaces. They back the "memory" database driver used for local runs
// and end-to-end tests of the HTTP surface.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// AccountStore keeps accounts in a map guarded by a RWMutex. Email
// uniqueness is enforced under the write lock.
type AccountStore struct {
	mu      sync.RWMutex
	byID    map[string]domain.Account
	byEmail map[string]string
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:    make(map[string]domain.Account),
		byEmail: make(map[string]string),
	}
}

var _ store.AccountStore = (*AccountStore)(nil)

func (s *AccountStore) Create(_ context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[account.Email]; exists {
		return store.ErrEmailExists
	}
	account.ID = uuid.NewString()
	s.byID[account.ID] = *account
	s.byEmail[account.Email] = account.ID
	return nil
}

func (s *AccountStore) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	a := s.byID[id]
	return &a, nil
}

func (s *AccountStore) GetByIDs(_ context.Context, ids []string) (map[string]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*domain.Account, len(ids))
	for _, id := range ids {
		if a, ok := s.byID[id]; ok {
			out[id] = &a
		}
	}
	return out, nil
}

type listingRecord struct {
	listing domain.Listing
	seq     uint64
}

// ListingStore keeps listings, including soft-deleted ones, in a map
// guarded by a RWMutex.
type ListingStore struct {
	mu      sync.RWMutex
	records map[string]*listingRecord
	nextSeq uint64
}

// NewListingStore creates an empty ListingStore.
func NewListingStore() *ListingStore {
	return &ListingStore{records: make(map[string]*listingRecord)}
}

var _ store.ListingStore = (*ListingStore)(nil)

func (s *ListingStore) Create(_ context.Context, listing *domain.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	listing.ID = uuid.NewString()
	s.nextSeq++
	rec := &listingRecord{listing: *listing, seq: s.nextSeq}
	rec.listing.Owner = nil
	s.records[listing.ID] = rec
	return nil
}

func (s *ListingStore) GetActiveByID(_ context.Context, id string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok || rec.listing.IsDeleted {
		return nil, store.ErrListingNotFound
	}
	l := rec.listing
	return &l, nil
}

func (s *ListingStore) Update(_ context.Context, listing *domain.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[listing.ID]
	if !ok || rec.listing.IsDeleted {
		return store.ErrListingNotFound
	}
	rec.listing.Title = listing.Title
	rec.listing.Description = listing.Description
	rec.listing.Price = listing.Price
	rec.listing.Location = listing.Location
	rec.listing.Status = listing.Status
	rec.listing.UpdatedAt = listing.UpdatedAt
	return nil
}

func (s *ListingStore) SoftDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.listing.IsDeleted {
		return store.ErrListingNotFound
	}
	rec.listing.IsDeleted = true
	rec.listing.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *ListingStore) List(_ context.Context, query store.ListingQuery) (*store.ListingPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*listingRecord, 0, len(s.records))
	for _, rec := range s.records {
		if matches(&rec.listing, query.Filter) {
			matched = append(matched, rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.listing.CreatedAt.Equal(b.listing.CreatedAt) {
			return a.listing.CreatedAt.After(b.listing.CreatedAt)
		}
		return a.seq > b.seq
	})

	page := &store.ListingPage{
		Listings: []*domain.Listing{},
		Total:    int64(len(matched)),
	}
	start := query.Offset()
	if start >= len(matched) {
		return page, nil
	}
	end := start + query.Limit
	if query.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	for _, rec := range matched[start:end] {
		l := rec.listing
		page.Listings = append(page.Listings, &l)
	}
	return page, nil
}

func matches(l *domain.Listing, f store.ListingFilter) bool {
	if l.IsDeleted {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(l.Title), needle) &&
			!strings.Contains(strings.ToLower(l.Location), needle) {
			return false
		}
	}
	return true
}
