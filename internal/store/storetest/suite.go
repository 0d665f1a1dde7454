// Package storetest holds a behavioural test suite shared by every store
// backend, so the memory, Mongo, and Postgres implementations are held to
// the same contract.
package storetest

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// Harness is a pair of empty stores plus an id that is well formed for the
// backend but refers to nothing.
type Harness struct {
	Accounts  store.AccountStore
	Listings  store.ListingStore
	UnknownID string
}

// Factory returns a fresh, empty Harness. It is called once per subtest.
type Factory func(t *testing.T) Harness

// Run executes the full suite against the backend produced by newHarness.
func Run(t *testing.T, newHarness Factory) {
	t.Run("accounts", func(t *testing.T) { runAccountTests(t, newHarness) })
	t.Run("listings", func(t *testing.T) { runListingTests(t, newHarness) })
}

func newAccount(t *testing.T, email string, role domain.Role) *domain.Account {
	t.Helper()
	a, err := domain.NewAccount("Test "+string(role), email, "$2a$10$hash", role)
	require.NoError(t, err)
	return a
}

func runAccountTests(t *testing.T, newHarness Factory) {
	ctx := context.Background()

	t.Run("create then get by email", func(t *testing.T) {
		h := newHarness(t)
		a := newAccount(t, "agent@example.com", domain.RoleAgent)
		require.NoError(t, h.Accounts.Create(ctx, a))
		require.NotEmpty(t, a.ID)

		got, err := h.Accounts.GetByEmail(ctx, "agent@example.com")
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)
		assert.Equal(t, a.Name, got.Name)
		assert.Equal(t, a.PasswordHash, got.PasswordHash)
		assert.Equal(t, domain.RoleAgent, got.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.Accounts.Create(ctx, newAccount(t, "dup@example.com", domain.RoleAgent)))

		err := h.Accounts.Create(ctx, newAccount(t, "dup@example.com", domain.RoleAdmin))
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("email match is exact", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.Accounts.Create(ctx, newAccount(t, "Case@example.com", domain.RoleAgent)))

		_, err := h.Accounts.GetByEmail(ctx, "case@example.com")
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})

	t.Run("get by ids skips unknown", func(t *testing.T) {
		h := newHarness(t)
		a := newAccount(t, "one@example.com", domain.RoleAgent)
		b := newAccount(t, "two@example.com", domain.RoleAdmin)
		require.NoError(t, h.Accounts.Create(ctx, a))
		require.NoError(t, h.Accounts.Create(ctx, b))

		got, err := h.Accounts.GetByIDs(ctx, []string{a.ID, b.ID, h.UnknownID, "not-an-id"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "one@example.com", got[a.ID].Email)
		assert.Equal(t, domain.RoleAdmin, got[b.ID].Role)
	})
}

// seedListings creates n listings owned by ownerID with strictly increasing
// creation times, so index n-1 is the newest.
func seedListings(t *testing.T, ls store.ListingStore, ownerID string, n int) []*domain.Listing {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := make([]*domain.Listing, 0, n)
	for i := 0; i < n; i++ {
		l, err := domain.NewListing(ownerID, fmt.Sprintf("Listing %02d", i), "", float64(100*(i+1)), "Dhaka", "")
		require.NoError(t, err)
		l.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		l.UpdatedAt = l.CreatedAt
		require.NoError(t, ls.Create(context.Background(), l))
		out = append(out, l)
	}
	return out
}

// createOwner registers an agent in h and returns its ID.
func createOwner(t *testing.T, h Harness) string {
	t.Helper()
	a := newAccount(t, "owner@example.com", domain.RoleAgent)
	require.NoError(t, h.Accounts.Create(context.Background(), a))
	return a.ID
}

func ids(listings []*domain.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func runListingTests(t *testing.T, newHarness Factory) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		h := newHarness(t)
		owner := createOwner(t, h)
		l, err := domain.NewListing(owner, "Lake view flat", "3 beds", 120000, "Gulshan, Dhaka", domain.StatusSold)
		require.NoError(t, err)
		require.NoError(t, h.Listings.Create(ctx, l))
		require.NotEmpty(t, l.ID)

		got, err := h.Listings.GetActiveByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, l.Title, got.Title)
		assert.Equal(t, "3 beds", got.Description)
		assert.Equal(t, 120000.0, got.Price)
		assert.Equal(t, "Gulshan, Dhaka", got.Location)
		assert.Equal(t, domain.StatusSold, got.Status)
		assert.Equal(t, owner, got.CreatedBy)
		assert.False(t, got.IsDeleted)
		assert.WithinDuration(t, l.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("get unknown or malformed id", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.Listings.GetActiveByID(ctx, h.UnknownID)
		assert.ErrorIs(t, err, store.ErrListingNotFound)

		_, err = h.Listings.GetActiveByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, store.ErrListingNotFound)
	})

	t.Run("update persists mutable fields", func(t *testing.T) {
		h := newHarness(t)
		owner := createOwner(t, h)
		l := seedListings(t, h.Listings, owner, 1)[0]

		l.Title = "Renamed"
		l.Price = 42
		l.Status = domain.StatusSold
		l.UpdatedAt = l.UpdatedAt.Add(time.Hour)
		require.NoError(t, h.Listings.Update(ctx, l))

		got, err := h.Listings.GetActiveByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, 42.0, got.Price)
		assert.Equal(t, domain.StatusSold, got.Status)
		assert.Equal(t, owner, got.CreatedBy)
		assert.WithinDuration(t, l.UpdatedAt, got.UpdatedAt, time.Millisecond)
	})

	t.Run("soft delete hides listing", func(t *testing.T) {
		h := newHarness(t)
		owner := createOwner(t, h)
		seeded := seedListings(t, h.Listings, owner, 2)

		require.NoError(t, h.Listings.SoftDelete(ctx, seeded[0].ID))

		_, err := h.Listings.GetActiveByID(ctx, seeded[0].ID)
		assert.ErrorIs(t, err, store.ErrListingNotFound)

		page, err := h.Listings.List(ctx, store.ListingQuery{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, []string{seeded[1].ID}, ids(page.Listings))

		assert.ErrorIs(t, h.Listings.SoftDelete(ctx, seeded[0].ID), store.ErrListingNotFound)
		assert.ErrorIs(t, h.Listings.SoftDelete(ctx, h.UnknownID), store.ErrListingNotFound)

		seeded[0].Title = "Zombie"
		assert.ErrorIs(t, h.Listings.Update(ctx, seeded[0]), store.ErrListingNotFound)
	})

	t.Run("pagination newest first", func(t *testing.T) {
		h := newHarness(t)
		owner := createOwner(t, h)
		seeded := seedListings(t, h.Listings, owner, 12)

		page, err := h.Listings.List(ctx, store.ListingQuery{Page: 1, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(12), page.Total)
		assert.Equal(t, []string{seeded[11].ID, seeded[10].ID, seeded[9].ID, seeded[8].ID, seeded[7].ID}, ids(page.Listings))

		last, err := h.Listings.List(ctx, store.ListingQuery{Page: 3, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, []string{seeded[1].ID, seeded[0].ID}, ids(last.Listings))

		beyond, err := h.Listings.List(ctx, store.ListingQuery{Page: 4, Limit: 5})
		require.NoError(t, err)
		assert.Empty(t, beyond.Listings)
		assert.Equal(t, int64(12), beyond.Total)

		far, err := h.Listings.List(ctx, store.ListingQuery{Page: math.MaxInt, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, far.Listings)
		assert.Equal(t, int64(12), far.Total)
	})

	t.Run("filters", func(t *testing.T) {
		h := newHarness(t)
		owner := createOwner(t, h)
		mk := func(title, location string, price float64, status domain.ListingStatus) *domain.Listing {
			l, err := domain.NewListing(owner, title, "", price, location, status)
			require.NoError(t, err)
			require.NoError(t, h.Listings.Create(ctx, l))
			return l
		}
		cottage := mk("Seaside Cottage", "Cox's Bazar", 500, domain.StatusAvailable)
		penthouse := mk("Penthouse", "Banani, DHAKA", 1500, domain.StatusSold)
		studio := mk("Studio a.b", "Sylhet", 1000, domain.StatusAvailable)
		decoy := mk("Studio axb", "Sylhet", 2000, domain.StatusAvailable)

		lo, hi := 500.0, 1500.0
		tests := []struct {
			name   string
			filter store.ListingFilter
			want   []*domain.Listing
		}{
			{"status", store.ListingFilter{Status: domain.StatusSold}, []*domain.Listing{penthouse}},
			{"inclusive price range", store.ListingFilter{MinPrice: &lo, MaxPrice: &hi}, []*domain.Listing{cottage, penthouse, studio}},
			{"min price only", store.ListingFilter{MinPrice: &hi}, []*domain.Listing{penthouse, decoy}},
			{"search matches location case-insensitively", store.ListingFilter{Search: "dhaka"}, []*domain.Listing{penthouse}},
			{"search matches title", store.ListingFilter{Search: "COTTAGE"}, []*domain.Listing{cottage}},
			{"search metacharacters are literal", store.ListingFilter{Search: "a.b"}, []*domain.Listing{studio}},
			{"combined", store.ListingFilter{Status: domain.StatusAvailable, Search: "studio", MaxPrice: &hi}, []*domain.Listing{studio}},
		}

		for _, tt := range tests {
			page, err := h.Listings.List(ctx, store.ListingQuery{Filter: tt.filter, Page: 1, Limit: 10})
			require.NoError(t, err, tt.name)
			assert.ElementsMatch(t, ids(tt.want), ids(page.Listings), tt.name)
			assert.Equal(t, int64(len(tt.want)), page.Total, tt.name)
		}
	})
}
