package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

func TestBuildFilterAlwaysExcludesDeleted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bson.M{"isDeleted": false}, buildFilter(store.ListingFilter{}))
}

func TestBuildFilterAllConstraints(t *testing.T) {
	t.Parallel()

	lo, hi := 100.0, 500.0
	f := buildFilter(store.ListingFilter{
		Status:   domain.StatusSold,
		MinPrice: &lo,
		MaxPrice: &hi,
		Search:   "a.b (c)",
	})

	assert.Equal(t, false, f["isDeleted"])
	assert.Equal(t, "sold", f["status"])
	assert.Equal(t, bson.M{"$gte": 100.0, "$lte": 500.0}, f["price"])

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	want := primitive.Regex{Pattern: `a\.b \(c\)`, Options: "i"}
	assert.Equal(t, bson.M{"title": want}, or[0])
	assert.Equal(t, bson.M{"location": want}, or[1])
}

func TestBuildFilterSingleBound(t *testing.T) {
	t.Parallel()

	hi := 250.0
	f := buildFilter(store.ListingFilter{MaxPrice: &hi})
	assert.Equal(t, bson.M{"$lte": 250.0}, f["price"])
	assert.NotContains(t, f, "$or")
	assert.NotContains(t, f, "status")
}

func TestToObjectIDsDropsMalformedAndDuplicates(t *testing.T) {
	t.Parallel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	got := toObjectIDs([]string{a.Hex(), "nope", b.Hex(), a.Hex(), ""})
	assert.Equal(t, []primitive.ObjectID{a, b}, got)
}

func TestObjectIDMalformedIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := objectID("123", store.ErrListingNotFound)
	assert.ErrorIs(t, err, store.ErrListingNotFound)
}
