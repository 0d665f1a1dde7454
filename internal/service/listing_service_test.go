package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/config"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/mocks"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/memory"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/service"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

var testPagination = config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100}

type listingFixture struct {
	svc      service.ListingService
	accounts *memory.AccountStore
	listings *memory.ListingStore
	cache    *mocks.MockListingCache
	agent    *domain.Account
	other    *domain.Account
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()
	f := &listingFixture{
		accounts: memory.NewAccountStore(),
		listings: memory.NewListingStore(),
		cache:    mocks.NewMockListingCache(),
	}
	f.agent = mustAccount(t, f.accounts, "agent@example.com", domain.RoleAgent)
	f.other = mustAccount(t, f.accounts, "other@example.com", domain.RoleAgent)

	svc, err := service.NewListingService(f.listings, f.accounts, f.cache, testPagination, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func mustAccount(t *testing.T, accounts store.AccountStore, email string, role domain.Role) *domain.Account {
	t.Helper()
	a, err := domain.NewAccount("Owner "+email, email, "hash", role)
	require.NoError(t, err)
	require.NoError(t, accounts.Create(context.Background(), a))
	return a
}

func price(v float64) *float64 { return &v }

func (f *listingFixture) create(t *testing.T, owner *domain.Account, title string) *domain.Listing {
	t.Helper()
	l, err := f.svc.Create(context.Background(), owner.ID, service.CreateListingInput{
		Title:    title,
		Price:    price(1000),
		Location: "Dhaka",
	})
	require.NoError(t, err)
	return l
}

func TestCreateListing(t *testing.T) {
	t.Parallel()

	t.Run("defaults status and records owner", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)

		l, err := f.svc.Create(context.Background(), f.agent.ID, service.CreateListingInput{
			Title:       "Lake view flat",
			Description: "3 beds",
			Price:       price(250000),
			Location:    "Gulshan",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, l.ID)
		assert.Equal(t, domain.StatusAvailable, l.Status)
		assert.Equal(t, f.agent.ID, l.CreatedBy)
		assert.False(t, l.IsDeleted)
	})

	t.Run("zero price is accepted", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)

		l, err := f.svc.Create(context.Background(), f.agent.ID, service.CreateListingInput{
			Title: "Gift", Price: price(0), Location: "Sylhet", Status: "sold",
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, l.Price)
		assert.Equal(t, domain.StatusSold, l.Status)
	})

	required := []service.CreateListingInput{
		{Price: price(1), Location: "x"},
		{Title: "x", Location: "x"},
		{Title: "x", Price: price(1), Location: "   "},
	}
	for _, in := range required {
		f := newListingFixture(t)
		_, err := f.svc.Create(context.Background(), f.agent.ID, in)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Title, price, and location are required", verr.Message)
	}

	t.Run("invalid status", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)

		_, err := f.svc.Create(context.Background(), f.agent.ID, service.CreateListingInput{
			Title: "x", Price: price(1), Location: "x", Status: "pending",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestListListings(t *testing.T) {
	t.Parallel()

	t.Run("pagination metadata", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		for i := 0; i < 12; i++ {
			f.create(t, f.agent, "Listing")
		}

		res, err := f.svc.List(context.Background(), store.ListingQuery{Page: 1, Limit: 5})
		require.NoError(t, err)
		assert.Len(t, res.Listings, 5)
		assert.Equal(t, service.Pagination{Total: 12, Page: 1, Limit: 5, Pages: 3}, res.Pagination)

		res, err = f.svc.List(context.Background(), store.ListingQuery{Page: 3, Limit: 5})
		require.NoError(t, err)
		assert.Len(t, res.Listings, 2)
	})

	t.Run("defaults and cap", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)

		res, err := f.svc.List(context.Background(), store.ListingQuery{})
		require.NoError(t, err)
		assert.Equal(t, service.Pagination{Total: 0, Page: 1, Limit: 10, Pages: 0}, res.Pagination)
		assert.NotNil(t, res.Listings)

		res, err = f.svc.List(context.Background(), store.ListingQuery{Page: 1, Limit: 5000})
		require.NoError(t, err)
		assert.Equal(t, 100, res.Pagination.Limit)
	})

	t.Run("populates owners", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		f.create(t, f.agent, "Mine")
		f.create(t, f.other, "Theirs")

		res, err := f.svc.List(context.Background(), store.ListingQuery{})
		require.NoError(t, err)
		require.Len(t, res.Listings, 2)
		for _, l := range res.Listings {
			require.NotNil(t, l.Owner)
			assert.Equal(t, l.CreatedBy, l.Owner.ID)
		}
	})

	t.Run("excludes deleted", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		keep := f.create(t, f.agent, "Keep")
		gone := f.create(t, f.agent, "Gone")
		require.NoError(t, f.svc.Delete(context.Background(), f.agent.ID, gone.ID))

		res, err := f.svc.List(context.Background(), store.ListingQuery{})
		require.NoError(t, err)
		require.Len(t, res.Listings, 1)
		assert.Equal(t, keep.ID, res.Listings[0].ID)
		assert.Equal(t, int64(1), res.Pagination.Total)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		listings := &mocks.MockListingStore{}
		listings.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
		svc, err := service.NewListingService(listings, memory.NewAccountStore(), nil, testPagination, nil)
		require.NoError(t, err)

		_, err = svc.List(context.Background(), store.ListingQuery{})
		var serr *service.ServiceError
		assert.ErrorAs(t, err, &serr)
	})

	t.Run("passes clamped query to store", func(t *testing.T) {
		t.Parallel()
		listings := &mocks.MockListingStore{}
		want := store.ListingQuery{Page: 2, Limit: 100, Filter: store.ListingFilter{Search: "lake"}}
		listings.On("List", mock.Anything, want).Return(&store.ListingPage{Total: 150}, nil)
		svc, err := service.NewListingService(listings, memory.NewAccountStore(), nil, testPagination, nil)
		require.NoError(t, err)

		res, err := svc.List(context.Background(), store.ListingQuery{Page: 2, Limit: 500, Filter: store.ListingFilter{Search: "lake"}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Pagination.Pages)
		listings.AssertExpectations(t)
	})
}

func TestGetListing(t *testing.T) {
	t.Parallel()

	t.Run("populates owner and caches", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		created := f.create(t, f.agent, "Cached")

		got, err := f.svc.Get(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Owner)
		assert.Equal(t, f.agent.Email, got.Owner.Email)
		assert.Equal(t, 1, f.cache.Sets)

		cached, ok := f.cache.Get(context.Background(), created.ID)
		require.True(t, ok)
		assert.Equal(t, "Cached", cached.Title)
	})

	t.Run("cache hit skips store", func(t *testing.T) {
		t.Parallel()
		listings := &mocks.MockListingStore{}
		cache := mocks.NewMockListingCache()
		cache.Set(context.Background(), &domain.Listing{ID: "abc", Title: "From cache"})
		svc, err := service.NewListingService(listings, memory.NewAccountStore(), cache, testPagination, nil)
		require.NoError(t, err)

		got, err := svc.Get(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "From cache", got.Title)
		listings.AssertNotCalled(t, "GetActiveByID", mock.Anything, mock.Anything)
	})

	t.Run("missing, deleted, and malformed are not found", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		deleted := f.create(t, f.agent, "Deleted")
		require.NoError(t, f.svc.AdminDelete(context.Background(), deleted.ID))

		for _, id := range []string{deleted.ID, "does-not-exist", ""} {
			_, err := f.svc.Get(context.Background(), id)
			assert.ErrorIs(t, err, store.ErrListingNotFound, "id %q", id)
		}
	})
}

// pausingListingStore holds the first GetActiveByID after it has read the
// store, until resume is closed.
type pausingListingStore struct {
	store.ListingStore
	once   sync.Once
	loaded chan struct{}
	resume chan struct{}
}

func (s *pausingListingStore) GetActiveByID(ctx context.Context, id string) (*domain.Listing, error) {
	l, err := s.ListingStore.GetActiveByID(ctx, id)
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.loaded)
		<-s.resume
	}
	return l, err
}

func TestGetDoesNotCacheListingDeletedMidRead(t *testing.T) {
	t.Parallel()

	f := newListingFixture(t)
	l := f.create(t, f.agent, "Racy")

	paused := &pausingListingStore{
		ListingStore: f.listings,
		loaded:       make(chan struct{}),
		resume:       make(chan struct{}),
	}
	svc, err := service.NewListingService(paused, f.accounts, f.cache, testPagination, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Get(context.Background(), l.ID)
		done <- err
	}()

	<-paused.loaded
	require.NoError(t, svc.Delete(context.Background(), f.agent.ID, l.ID))
	close(paused.resume)
	require.NoError(t, <-done)

	_, err = svc.Get(context.Background(), l.ID)
	assert.ErrorIs(t, err, store.ErrListingNotFound)
	_, cached := f.cache.Get(context.Background(), l.ID)
	assert.False(t, cached)
}

func TestUpdateListing(t *testing.T) {
	t.Parallel()

	t.Run("owner applies partial patch", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		l := f.create(t, f.agent, "Old title")
		before := l.UpdatedAt
		time.Sleep(time.Millisecond)

		sold := domain.StatusSold
		updated, err := f.svc.Update(context.Background(), f.agent.ID, l.ID, domain.ListingPatch{
			Title:  ptrTo("New title"),
			Status: &sold,
		})
		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, domain.StatusSold, updated.Status)
		assert.Equal(t, "Dhaka", updated.Location)
		assert.Equal(t, 1000.0, updated.Price)
		assert.True(t, updated.UpdatedAt.After(before))
		assert.Equal(t, []string{l.ID}, f.cache.Invalidated)

		got, err := f.svc.Get(context.Background(), l.ID)
		require.NoError(t, err)
		assert.Equal(t, "New title", got.Title)
	})

	t.Run("empty patch writes nothing", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		l := f.create(t, f.agent, "Untouched")

		got, err := f.svc.Update(context.Background(), f.agent.ID, l.ID, domain.ListingPatch{})
		require.NoError(t, err)
		assert.Equal(t, "Untouched", got.Title)
		assert.True(t, got.UpdatedAt.Equal(l.UpdatedAt))
		assert.Empty(t, f.cache.Invalidated)

		_, err = f.svc.Update(context.Background(), f.other.ID, l.ID, domain.ListingPatch{})
		assert.ErrorIs(t, err, service.ErrUpdateNotOwned)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		l := f.create(t, f.agent, "Mine")

		_, err := f.svc.Update(context.Background(), f.other.ID, l.ID, domain.ListingPatch{Title: ptrTo("Stolen")})
		assert.ErrorIs(t, err, service.ErrUpdateNotOwned)
		assert.ErrorIs(t, err, service.ErrNotOwned)

		got, err := f.svc.Get(context.Background(), l.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mine", got.Title)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		l := f.create(t, f.agent, "Keep")

		_, err := f.svc.Update(context.Background(), f.agent.ID, l.ID, domain.ListingPatch{Title: ptrTo(" ")})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, f.cache.Invalidated)
	})

	t.Run("deleted listing is not found", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		l := f.create(t, f.agent, "Gone")
		require.NoError(t, f.svc.Delete(context.Background(), f.agent.ID, l.ID))

		_, err := f.svc.Update(context.Background(), f.agent.ID, l.ID, domain.ListingPatch{Title: ptrTo("x")})
		assert.ErrorIs(t, err, store.ErrListingNotFound)
	})
}

func TestDeleteListing(t *testing.T) {
	t.Parallel()

	t.Run("owner soft deletes", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		l := f.create(t, f.agent, "Bye")

		require.NoError(t, f.svc.Delete(context.Background(), f.agent.ID, l.ID))
		_, err := f.svc.Get(context.Background(), l.ID)
		assert.ErrorIs(t, err, store.ErrListingNotFound)
		assert.Contains(t, f.cache.Invalidated, l.ID)

		assert.ErrorIs(t, f.svc.Delete(context.Background(), f.agent.ID, l.ID), store.ErrListingNotFound)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		l := f.create(t, f.agent, "Mine")

		err := f.svc.Delete(context.Background(), f.other.ID, l.ID)
		assert.ErrorIs(t, err, service.ErrDeleteNotOwned)

		_, err = f.svc.Get(context.Background(), l.ID)
		assert.NoError(t, err)
	})

	t.Run("admin deletes without ownership", func(t *testing.T) {
		t.Parallel()
		f := newListingFixture(t)
		l := f.create(t, f.agent, "Moderated")

		require.NoError(t, f.svc.AdminDelete(context.Background(), l.ID))
		_, err := f.svc.Get(context.Background(), l.ID)
		assert.ErrorIs(t, err, store.ErrListingNotFound)
		assert.ErrorIs(t, f.svc.AdminDelete(context.Background(), l.ID), store.ErrListingNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		t.Parallel()
		listings := &mocks.MockListingStore{}
		listings.On("SoftDelete", mock.Anything, "x").Return(errors.New("disk full"))
		svc, err := service.NewListingService(listings, memory.NewAccountStore(), nil, testPagination, nil)
		require.NoError(t, err)

		err = svc.AdminDelete(context.Background(), "x")
		var serr *service.ServiceError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "admin_delete_listing", serr.Operation)
	})
}

func ptrTo[T any](v T) *T { return &v }
