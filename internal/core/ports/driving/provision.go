package driving

import (
	"context"

	"github.com/custodia-labs/portalsync/internal/core/domain"
)

// Provisioner manages the external connection resource itself.
type Provisioner interface {
	// CreateConnection provisions the configured connection. Creation is
	// not idempotent: re-running against an existing connection fails
	// with the host's error.
	CreateConnection(ctx context.Context) (*domain.Connection, error)

	// ListConnections lists all external connections in the tenant.
	ListConnections(ctx context.Context) ([]domain.Connection, error)

	// Status inspects the connection, its schema and its item count.
	Status(ctx context.Context) (*ConnectionStatus, error)
}

// ConnectionStatus aggregates everything the status command reports.
type ConnectionStatus struct {
	// Connection is the host's current representation.
	Connection domain.Connection

	// Schema is the registered schema, nil when none is registered yet.
	Schema *domain.Schema

	// ItemCount is the number of synced items. Valid only when
	// ItemCountKnown is true; the item listing can fail independently
	// of the connection lookup.
	ItemCount      int
	ItemCountKnown bool
}
