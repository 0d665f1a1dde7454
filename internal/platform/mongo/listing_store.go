package mongo

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/redact"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

type listingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Location    string             `bson:"location"`
	Status      string             `bson:"status"`
	CreatedBy   primitive.ObjectID `bson:"createdBy"`
	IsDeleted   bool               `bson:"isDeleted"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *listingDocument) toDomain() *domain.Listing {
	return &domain.Listing{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Location:    d.Location,
		Status:      domain.ListingStatus(d.Status),
		CreatedBy:   d.CreatedBy.Hex(),
		IsDeleted:   d.IsDeleted,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// ListingStore implements store.ListingStore on the "properties" collection.
type ListingStore struct {
	conn   *Connector
	logger *slog.Logger
}

// NewListingStore creates a MongoDB ListingStore. If logger is nil, a
// default logger will be used.
func NewListingStore(conn *Connector, log *slog.Logger) *ListingStore {
	if conn == nil {
		panic("connector cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ListingStore{
		conn:   conn,
		logger: log.With(slog.String("component", "listing_store")),
	}
}

var _ store.ListingStore = (*ListingStore)(nil)

func (s *ListingStore) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(listingsCollection), nil
}

// Create implements store.ListingStore.Create.
func (s *ListingStore) Create(ctx context.Context, listing *domain.Listing) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := listing.Validate(); err != nil {
		return err
	}
	owner, err := primitive.ObjectIDFromHex(listing.CreatedBy)
	if err != nil {
		return store.NewStoreError("listing", "create", "owner id is not an ObjectID", store.ErrInvalidEntity)
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	doc := listingDocument{
		ID:          primitive.NewObjectID(),
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Location:    listing.Location,
		Status:      string(listing.Status),
		CreatedBy:   owner,
		IsDeleted:   false,
		CreatedAt:   listing.CreatedAt,
		UpdatedAt:   listing.UpdatedAt,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		log.Error("failed to insert listing", slog.String("error", redact.Error(err)))
		return store.NewStoreError("listing", "create", "insert failed", err)
	}

	listing.ID = doc.ID.Hex()
	log.Info("listing created", slog.String("listing_id", listing.ID), slog.String("owner_id", listing.CreatedBy))
	return nil
}

// GetActiveByID implements store.ListingStore.GetActiveByID.
func (s *ListingStore) GetActiveByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := objectID(id, store.ErrListingNotFound)
	if err != nil {
		return nil, err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	var doc listingDocument
	err = coll.FindOne(ctx, bson.M{"_id": oid, "isDeleted": false}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrListingNotFound
		}
		return nil, store.NewStoreError("listing", "get", "find failed", err)
	}
	return doc.toDomain(), nil
}

// Update implements store.ListingStore.Update.
func (s *ListingStore) Update(ctx context.Context, listing *domain.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}
	oid, err := objectID(listing.ID, store.ErrListingNotFound)
	if err != nil {
		return err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid, "isDeleted": false},
		bson.M{"$set": bson.M{
			"title":       listing.Title,
			"description": listing.Description,
			"price":       listing.Price,
			"location":    listing.Location,
			"status":      string(listing.Status),
			"updatedAt":   listing.UpdatedAt,
		}},
	)
	if err != nil {
		return store.NewStoreError("listing", "update", "update failed", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrListingNotFound
	}
	return nil
}

// SoftDelete implements store.ListingStore.SoftDelete.
func (s *ListingStore) SoftDelete(ctx context.Context, id string) error {
	oid, err := objectID(id, store.ErrListingNotFound)
	if err != nil {
		return err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid, "isDeleted": false},
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return store.NewStoreError("listing", "soft_delete", "update failed", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrListingNotFound
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("listing soft-deleted", slog.String("listing_id", id))
	return nil
}

// List implements store.ListingStore.List.
func (s *ListingStore) List(ctx context.Context, query store.ListingQuery) (*store.ListingPage, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	filter := buildFilter(query.Filter)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(query.Offset()))
	if query.Limit > 0 {
		opts.SetLimit(int64(query.Limit))
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, store.NewStoreError("listing", "list", "find failed", err)
	}
	var docs []listingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("listing", "list", "decode failed", err)
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, store.NewStoreError("listing", "list", "count failed", err)
	}

	page := &store.ListingPage{Listings: make([]*domain.Listing, 0, len(docs)), Total: total}
	for i := range docs {
		page.Listings = append(page.Listings, docs[i].toDomain())
	}
	return page, nil
}

// buildFilter translates a ListingFilter into a query document. Soft-deleted
// listings are always excluded.
func buildFilter(f store.ListingFilter) bson.M {
	filter := bson.M{"isDeleted": false}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"location": pattern},
		}
	}
	return filter
}
