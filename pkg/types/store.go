package types

import "errors"

// Engine is the generic primitive surface of the storage engine. Every
// method runs as a short-lived, implicitly committed transaction scoped to
// one collection. Domain operations (cascades, seeding, export/import) are
// defined on the concrete engine and built on top of these.
type Engine interface {
	// Open opens or creates the store described by config and applies any
	// pending schema migration. Idempotent: a second Open on an already
	// open handle is a no-op.
	Open(config Config) error

	// Close releases the underlying connection. Idempotent. A holder must
	// Close when another session requests a schema upgrade, otherwise that
	// session fails with ErrUpgradeBlocked.
	Close() error

	// Get retrieves the record with the given key.
	// Returns ErrNotFound if no record exists.
	Get(collection, key string) (any, error)

	// Put inserts or replaces a record keyed by its primary key field.
	Put(collection string, record any) error

	// Delete removes the record with the given key. Deleting a missing key
	// is not an error.
	Delete(collection, key string) error

	// List returns every record in the collection, in storage order.
	List(collection string) ([]any, error)

	// QueryByIndex returns the records whose indexed field equals value.
	// A value no record has yields an empty, non-nil slice.
	QueryByIndex(collection, index string, value any) ([]any, error)
}

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")

	// ErrUpgradeBlocked reports that a schema upgrade could not proceed
	// because another session holds an older open connection. The user must
	// close the other sessions; the call is not retried automatically.
	ErrUpgradeBlocked = errors.New("schema upgrade blocked: close other sessions")
)

// Record operation errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidData = errors.New("invalid record data")
)
