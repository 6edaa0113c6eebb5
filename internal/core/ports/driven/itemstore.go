package driven

import (
	"context"

	"github.com/custodia-labs/portalsync/internal/core/domain"
)

// ItemStore is the external connection API: an opaque item container
// keyed by a fixed connection id. Implementations are bound to one
// connection at construction time.
//
// Every call takes the bearer token explicitly; the store holds no
// credential state of its own.
type ItemStore interface {
	// CreateConnection provisions the external connection. The host
	// rejects duplicate ids; the raw host error is surfaced unchanged.
	CreateConnection(ctx context.Context, token string, conn domain.Connection) (*domain.Connection, error)

	// GetConnection fetches the bound connection's current representation.
	GetConnection(ctx context.Context, token string) (*domain.Connection, error)

	// ListConnections lists all external connections in the tenant.
	ListConnections(ctx context.Context, token string) ([]domain.Connection, error)

	// RegisterSchema submits the property schema. Registration is
	// asynchronous: on acceptance the host returns an operation
	// reference to poll.
	RegisterSchema(ctx context.Context, token string, schema domain.Schema) (operationRef string, err error)

	// GetSchema fetches the currently registered schema.
	// Returns domain.ErrSchemaNotFound when none is registered; absence
	// is distinct from failure.
	GetSchema(ctx context.Context, token string) (*domain.Schema, error)

	// GetOperation checks an asynchronous operation once, without
	// blocking. A non-2xx poll response is a soft failure: the returned
	// operation has StatusUnknown and the error is nil, so a caller's
	// wait loop can continue.
	GetOperation(ctx context.Context, token, operationRef string) (*domain.Operation, error)

	// ListOperations lists all asynchronous operations recorded on the
	// connection.
	ListOperations(ctx context.Context, token string) ([]domain.Operation, error)

	// UpsertItem creates or replaces an item by its id.
	UpsertItem(ctx context.Context, token string, item *domain.ExternalItem) error

	// DeleteItem removes an item by id. An already-absent item is not an
	// error.
	DeleteItem(ctx context.Context, token, itemID string) error

	// CountItems returns the number of items currently in the connection.
	CountItems(ctx context.Context, token string) (int, error)
}
