package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/redact"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

type accountDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *accountDocument) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         domain.Role(d.Role),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// AccountStore implements store.AccountStore on the "users" collection.
type AccountStore struct {
	conn   *Connector
	logger *slog.Logger
}

// NewAccountStore creates a MongoDB AccountStore. If logger is nil, a
// default logger will be used.
func NewAccountStore(conn *Connector, log *slog.Logger) *AccountStore {
	if conn == nil {
		panic("connector cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &AccountStore{
		conn:   conn,
		logger: log.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*AccountStore)(nil)

func (s *AccountStore) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(accountsCollection), nil
}

// Create implements store.AccountStore.Create.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		return err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	doc := accountDocument{
		ID:        primitive.NewObjectID(),
		Name:      account.Name,
		Email:     account.Email,
		Password:  account.PasswordHash,
		Role:      string(account.Role),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Debug("duplicate email on account insert")
			return store.ErrEmailExists
		}
		log.Error("failed to insert account", slog.String("error", redact.Error(err)))
		return store.NewStoreError("account", "create", "insert failed", err)
	}

	account.ID = doc.ID.Hex()
	log.Info("account created", slog.String("account_id", account.ID), slog.String("role", string(account.Role)))
	return nil
}

// GetByEmail implements store.AccountStore.GetByEmail.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	var doc accountDocument
	err = coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrAccountNotFound
		}
		return nil, store.NewStoreError("account", "get_by_email", "find failed", err)
	}
	return doc.toDomain(), nil
}

// GetByIDs implements store.AccountStore.GetByIDs.
func (s *AccountStore) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	oids := toObjectIDs(ids)
	out := make(map[string]*domain.Account, len(oids))
	if len(oids) == 0 {
		return out, nil
	}

	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, store.NewStoreError("account", "get_by_ids", "find failed", err)
	}
	var docs []accountDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("account", "get_by_ids", "decode failed", err)
	}
	for i := range docs {
		a := docs[i].toDomain()
		out[a.ID] = a
	}
	return out, nil
}

// toObjectIDs converts hex ids, dropping any that are malformed.
func toObjectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if _, dup := seen[oid]; dup {
			continue
		}
		seen[oid] = struct{}{}
		out = append(out, oid)
	}
	return out
}

// objectID parses id or returns notFound, so malformed ids behave like
// missing ones.
func objectID(id string, notFound error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id", notFound)
	}
	return oid, nil
}
