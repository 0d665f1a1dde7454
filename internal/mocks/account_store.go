package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// MockAccountStore is a mock of store.AccountStore for use with testify/mock.
type MockAccountStore struct {
	mock.Mock
}

var _ store.AccountStore = (*MockAccountStore)(nil)

// Create is a mock implementation of store.AccountStore.Create
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// GetByEmail is a mock implementation of store.AccountStore.GetByEmail
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByIDs is a mock implementation of store.AccountStore.GetByIDs
func (m *MockAccountStore) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	args := m.Called(ctx, ids)
	if accounts, ok := args.Get(0).(map[string]*domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}
