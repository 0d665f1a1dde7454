//go:build integration

// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests obtain a migrated connection with GetTestDBWithT and clear data
// between cases with Reset. When no database URL is configured the helpers
// skip the calling test, so integration suites can be run unconditionally
// with the integration build tag.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.Reset(t, db)
//	    accounts := postgres.NewAccountStore(db, nil)
//	    ...
//	}
//
// Environment variables, in order of precedence:
//
//   - DATABASE_TEST_URL
//   - DATABASE_URL
package testdb
