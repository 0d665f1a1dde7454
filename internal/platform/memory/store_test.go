package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/memory"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store/storetest"
)

func TestMemoryStores(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Harness {
		return storetest.Harness{
			Accounts:  memory.NewAccountStore(),
			Listings:  memory.NewListingStore(),
			UnknownID: uuid.NewString(),
		}
	})
}

func TestConcurrentRegistrationSameEmail(t *testing.T) {
	t.Parallel()

	accounts := memory.NewAccountStore()
	const workers = 16

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := domain.NewAccount("Racer", "race@example.com", "hash", domain.RoleAgent)
			if err != nil {
				errs <- err
				return
			}
			errs <- accounts.Create(context.Background(), a)
		}()
	}
	wg.Wait()
	close(errs)

	var created, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			created++
		case assert.ErrorIs(t, err, store.ErrEmailExists):
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)
}

func TestStoredListingIsNotAliased(t *testing.T) {
	t.Parallel()

	listings := memory.NewListingStore()
	l, err := domain.NewListing("owner", "Flat", "", 10, "Dhaka", "")
	require.NoError(t, err)
	require.NoError(t, listings.Create(context.Background(), l))

	l.Title = "mutated after create"

	got, err := listings.GetActiveByID(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flat", got.Title)
}
