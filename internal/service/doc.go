// Package service contains the application use cases: registering and
// logging in accounts, and managing property listings.
//
// Services receive their collaborators (stores, token service, password
// hasher, cache) through constructor injection and depend only on the
// interfaces in internal/store and internal/service/auth, never on a
// concrete backend.
//
// Expected failures are returned as sentinel errors (ErrInvalidCredentials,
// ErrNotOwned, store.ErrListingNotFound, store.ErrEmailExists) or as
// *domain.ValidationError carrying a client-safe message. Anything else is
// wrapped in ServiceError and surfaces as a 500.
package service
