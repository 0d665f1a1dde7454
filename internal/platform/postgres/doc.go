// Package postgres provides PostgreSQL implementations of the store
// interfaces, for deployments that prefer a relational backend over
// MongoDB. The schema is managed by goose migrations embedded in the
// binary (see Migrate).
package postgres
