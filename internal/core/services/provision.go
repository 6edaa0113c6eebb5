package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driven"
	"github.com/custodia-labs/portalsync/internal/core/ports/driving"
	"github.com/custodia-labs/portalsync/internal/logger"
)

// Ensure Provisioner implements the interface.
var _ driving.Provisioner = (*Provisioner)(nil)

// Provisioner creates and inspects the external connection resource.
type Provisioner struct {
	tokens driven.TokenProvider
	store  driven.ItemStore
	conn   domain.Connection
}

// NewProvisioner creates a provisioner for the configured connection.
func NewProvisioner(tokens driven.TokenProvider, store driven.ItemStore, conn domain.Connection) *Provisioner {
	return &Provisioner{tokens: tokens, store: store, conn: conn}
}

// CreateConnection provisions the connection. Creation is not
// idempotent: the host rejects duplicate ids and the raw host error is
// surfaced for the operator.
func (p *Provisioner) CreateConnection(ctx context.Context) (*domain.Connection, error) {
	token, err := p.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	created, err := p.store.CreateConnection(ctx, token, p.conn)
	if err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	logger.Info("Connection %s created, state %s", created.ID, created.State)
	return created, nil
}

// ListConnections lists all external connections in the tenant.
func (p *Provisioner) ListConnections(ctx context.Context) ([]domain.Connection, error) {
	token, err := p.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	return p.store.ListConnections(ctx, token)
}

// Status inspects the connection, its registered schema, and its item
// count, reusing one token for the batch. Schema absence is reported as
// a nil schema; an item listing failure leaves the count unknown rather
// than failing the whole status check.
func (p *Provisioner) Status(ctx context.Context) (*driving.ConnectionStatus, error) {
	token, err := p.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	conn, err := p.store.GetConnection(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}

	status := &driving.ConnectionStatus{Connection: *conn}

	schema, err := p.store.GetSchema(ctx, token)
	switch {
	case err == nil:
		status.Schema = schema
	case errors.Is(err, domain.ErrSchemaNotFound):
		// No schema registered yet.
	default:
		return nil, fmt.Errorf("get schema: %w", err)
	}

	count, err := p.store.CountItems(ctx, token)
	if err != nil {
		logger.Warn("Could not list items: %v", err)
	} else {
		status.ItemCount = count
		status.ItemCountKnown = true
	}

	return status, nil
}
