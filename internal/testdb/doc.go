// Package testdb provides utilities for database integration tests: it
// opens a connection from the test database environment variable, applies
// migrations once per test binary, and offers transaction-scoped isolation
// so tests can run in parallel without seeing each other's writes.
//
// Tests using this package skip automatically when no test database is
// configured (see ciutil.GetTestDatabaseURL).
package testdb
