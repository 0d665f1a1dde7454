package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/domain"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/platform/logger"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/redact"
	"github.com/mdhasanshuvo/property-listing-backend-wixford/internal/store"
)

// AccountStore implements store.AccountStore on the accounts table.
type AccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAccountStore creates a PostgreSQL AccountStore.
// It accepts a database connection or transaction that is managed by the caller.
// If logger is nil, a default logger will be used.
func NewAccountStore(db store.DBTX, log *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &AccountStore{
		db:     db,
		logger: log.With(slog.String("component", "account_store")),
	}
}

var _ store.AccountStore = (*AccountStore)(nil)

// Create implements store.AccountStore.Create.
// Returns store.ErrEmailExists when the unique email constraint fires.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		return err
	}

	id := uuid.New()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, account.Name, account.Email, account.PasswordHash, string(account.Role),
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate email on account insert")
			return store.ErrEmailExists
		}
		log.Error("failed to insert account", slog.String("error", redact.Error(err)))
		return store.NewStoreError("account", "create", "insert failed", MapError(err))
	}

	account.ID = id.String()
	log.Info("account created", slog.String("account_id", account.ID), slog.String("role", string(account.Role)))
	return nil
}

// GetByEmail implements store.AccountStore.GetByEmail.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE email = $1`, email)

	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAccountNotFound
		}
		return nil, store.NewStoreError("account", "get_by_email", "query failed", err)
	}
	return a, nil
}

// GetByIDs implements store.AccountStore.GetByIDs.
func (s *AccountStore) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	out := make(map[string]*domain.Account, len(ids))
	parsed := make([]string, 0, len(ids))
	for _, id := range ids {
		if u, err := uuid.Parse(id); err == nil {
			parsed = append(parsed, u.String())
		}
	}
	if len(parsed) == 0 {
		return out, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM accounts
		WHERE id = ANY($1::uuid[])`, parsed)
	if err != nil {
		return nil, store.NewStoreError("account", "get_by_ids", "query failed", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, store.NewStoreError("account", "get_by_ids", "scan failed", err)
		}
		out[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("account", "get_by_ids", "iteration failed", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		a    domain.Account
		id   uuid.UUID
		role string
	)
	if err := row.Scan(&id, &a.Name, &a.Email, &a.PasswordHash, &role, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.ID = id.String()
	a.Role = domain.Role(role)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}
