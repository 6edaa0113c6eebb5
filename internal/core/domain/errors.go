package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSchemaNotFound indicates the connection has no registered schema.
	// Absence is not a failure: callers use it to decide create-vs-update.
	ErrSchemaNotFound = errors.New("schema not registered")

	// ErrSchemaBuildFailed indicates schema registration reached the
	// terminal failed state. Not retried.
	ErrSchemaBuildFailed = errors.New("schema build failed")

	// ErrSchemaBuildTimedOut indicates the wait budget elapsed before the
	// operation reached a terminal state. The operation may still be in
	// flight server-side; re-check later with "schema status".
	ErrSchemaBuildTimedOut = errors.New("schema build timed out")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Authentication errors.

	// ErrAuthFailed indicates the client-credentials token exchange failed.
	ErrAuthFailed = errors.New("authentication failed")

	// Database errors.

	// ErrDatabaseConnect indicates the portal database was unreachable.
	// Fatal: the sync run aborts before any upsert.
	ErrDatabaseConnect = errors.New("database connect failed")
)
