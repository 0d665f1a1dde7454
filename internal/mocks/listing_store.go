package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// MockListingStore is a mock of store.ListingStore for use with testify/mock.
type MockListingStore struct {
	mock.Mock
}

var _ store.ListingStore = (*MockListingStore)(nil)

// Create is a mock implementation of store.ListingStore.Create
func (m *MockListingStore) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

// GetActiveByID is a mock implementation of store.ListingStore.GetActiveByID
func (m *MockListingStore) GetActiveByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if listing, ok := args.Get(0).(*domain.Listing); ok {
		return listing, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.ListingStore.Update
func (m *MockListingStore) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

// SoftDelete is a mock implementation of store.ListingStore.SoftDelete
func (m *MockListingStore) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// List is a mock implementation of store.ListingStore.List
func (m *MockListingStore) List(ctx context.Context, query store.ListingQuery) (*store.ListingPage, error) {
	args := m.Called(ctx, query)
	if page, ok := args.Get(0).(*store.ListingPage); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}
