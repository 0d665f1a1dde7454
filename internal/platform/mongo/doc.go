// Package mongo implements the store interfaces on MongoDB, the default
// backend. Accounts live in the "users" collection and listings in
// "properties"; listing owners are stored as ObjectID references.
package mongo
