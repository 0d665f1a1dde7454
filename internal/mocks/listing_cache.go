package mocks

import (
	"context"
	"sync"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
)

// MockListingCache is an in-process ListingCache that records invalidations.
// Like the Redis cache, it ignores Set for an id once that id is invalidated.
type MockListingCache struct {
	mu          sync.Mutex
	entries     map[string]domain.Listing
	tombstones  map[string]struct{}
	Invalidated []string
	Sets        int
}

// NewMockListingCache creates an empty MockListingCache.
func NewMockListingCache() *MockListingCache {
	return &MockListingCache{
		entries:    make(map[string]domain.Listing),
		tombstones: make(map[string]struct{}),
	}
}

// Get returns a copy of the cached listing.
func (m *MockListingCache) Get(_ context.Context, id string) (*domain.Listing, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	return &l, true
}

// Set stores a copy of listing unless its id was invalidated.
func (m *MockListingCache) Set(_ context.Context, listing *domain.Listing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, gone := m.tombstones[listing.ID]; gone {
		return
	}
	m.entries[listing.ID] = *listing
	m.Sets++
}

// Invalidate drops id and records the call.
func (m *MockListingCache) Invalidate(_ context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	m.tombstones[id] = struct{}{}
	m.Invalidated = append(m.Invalidated, id)
}
