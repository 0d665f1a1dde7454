package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/redact"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

const listingColumns = `id, title, description, price, location, status, created_by, is_deleted, created_at, updated_at`

// ListingStore implements store.ListingStore on the listings table.
// It holds a *sql.DB rather than a DBTX because List opens its own
// read-only transaction.
type ListingStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewListingStore creates a PostgreSQL ListingStore. If logger is nil, a
// default logger will be used.
func NewListingStore(db *sql.DB, log *slog.Logger) *ListingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ListingStore{
		db:     db,
		logger: log.With(slog.String("component", "listing_store")),
	}
}

var _ store.ListingStore = (*ListingStore)(nil)

// Create implements store.ListingStore.Create.
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *ListingStore) Create(ctx context.Context, listing *domain.Listing) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := listing.Validate(); err != nil {
		return err
	}
	owner, err := uuid.Parse(listing.CreatedBy)
	if err != nil {
		return store.NewStoreError("listing", "create", "owner id is not a UUID", store.ErrInvalidEntity)
	}

	id := uuid.New()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO listings (`+listingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9)`,
		id, listing.Title, listing.Description, listing.Price, listing.Location,
		string(listing.Status), owner, listing.CreatedAt, listing.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("listing owner does not exist", slog.String("owner_id", listing.CreatedBy))
		} else {
			log.Error("failed to insert listing", slog.String("error", redact.Error(err)))
		}
		return store.NewStoreError("listing", "create", "insert failed", MapError(err))
	}

	listing.ID = id.String()
	log.Info("listing created", slog.String("listing_id", listing.ID), slog.String("owner_id", listing.CreatedBy))
	return nil
}

// GetActiveByID implements store.ListingStore.GetActiveByID.
func (s *ListingStore) GetActiveByID(ctx context.Context, id string) (*domain.Listing, error) {
	lid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed id", store.ErrListingNotFound)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1 AND NOT is_deleted`, lid)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrListingNotFound
		}
		return nil, store.NewStoreError("listing", "get", "query failed", err)
	}
	return l, nil
}

// Update implements store.ListingStore.Update.
func (s *ListingStore) Update(ctx context.Context, listing *domain.Listing) error {
	if err := listing.Validate(); err != nil {
		return err
	}
	lid, err := uuid.Parse(listing.ID)
	if err != nil {
		return fmt.Errorf("%w: malformed id", store.ErrListingNotFound)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE listings
		SET title = $1, description = $2, price = $3, location = $4, status = $5, updated_at = $6
		WHERE id = $7 AND NOT is_deleted`,
		listing.Title, listing.Description, listing.Price, listing.Location,
		string(listing.Status), listing.UpdatedAt, lid,
	)
	if err != nil {
		return store.NewStoreError("listing", "update", "update failed", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrListingNotFound)
}

// SoftDelete implements store.ListingStore.SoftDelete.
func (s *ListingStore) SoftDelete(ctx context.Context, id string) error {
	lid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: malformed id", store.ErrListingNotFound)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE listings
		SET is_deleted = TRUE, updated_at = $1
		WHERE id = $2 AND NOT is_deleted`,
		time.Now().UTC(), lid,
	)
	if err != nil {
		return store.NewStoreError("listing", "soft_delete", "update failed", err)
	}
	if err := CheckRowsAffected(result, store.ErrListingNotFound); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("listing soft-deleted", slog.String("listing_id", id))
	return nil
}

// List implements store.ListingStore.List. The page and the total are read
// from one snapshot.
func (s *ListingStore) List(ctx context.Context, query store.ListingQuery) (*store.ListingPage, error) {
	where, args := buildWhere(query.Filter)
	page := &store.ListingPage{Listings: []*domain.Listing{}}

	err := store.RunInTransaction(ctx, s.db, store.ReadOnlySnapshot, func(ctx context.Context, tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings WHERE `+where, args...).Scan(&page.Total); err != nil {
			return fmt.Errorf("count: %w", err)
		}

		pageArgs := append(append([]any{}, args...), query.Offset())
		sqlText := `SELECT ` + listingColumns + ` FROM listings WHERE ` + where +
			` ORDER BY created_at DESC, id DESC OFFSET $` + fmt.Sprint(len(pageArgs))
		if query.Limit > 0 {
			pageArgs = append(pageArgs, query.Limit)
			sqlText += ` LIMIT $` + fmt.Sprint(len(pageArgs))
		}

		rows, err := tx.QueryContext(ctx, sqlText, pageArgs...)
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			l, err := scanListing(rows)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			page.Listings = append(page.Listings, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, store.NewStoreError("listing", "list", "query failed", err)
	}
	return page, nil
}

// buildWhere translates a ListingFilter into a WHERE clause with positional
// arguments. Soft-deleted listings are always excluded.
func buildWhere(f store.ListingFilter) (string, []any) {
	clauses := []string{"NOT is_deleted"}
	var args []any

	add := func(format string, v any) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(format, len(args)))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR location ILIKE $%d ESCAPE '\')`, n, n))
	}
	return strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var (
		l      domain.Listing
		id     uuid.UUID
		owner  uuid.UUID
		status string
	)
	err := row.Scan(&id, &l.Title, &l.Description, &l.Price, &l.Location, &status,
		&owner, &l.IsDeleted, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.ID = id.String()
	l.CreatedBy = owner.String()
	l.Status = domain.ListingStatus(status)
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return &l, nil
}
