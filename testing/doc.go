// Package testing groups helpers for tests written against the fixture engine.
//
// The mocks subpackage provides testify mocks of the connection contracts
// (types.Interface, types.Tx, types.Statement) and of metadata.Handler.
//
// The fixtures subpackage builds go-sqlmock backed sessions and wraps Load and
// Assert so tests fail with the full dataset diff.
//
// The containers subpackage (build tag "integration") starts PostgreSQL and Oracle
// with testcontainers-go.
package testing
