package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driven"
	"github.com/custodia-labs/portalsync/internal/core/ports/driving"
	"github.com/custodia-labs/portalsync/internal/logger"
)

// Ensure SchemaRegistrar implements the interface.
var _ driving.SchemaRegistrar = (*SchemaRegistrar)(nil)

// SchemaRegistrar submits the property schema and drives the asynchronous
// registration operation to a terminal state.
//
// The wait loop is a small state machine over the operation status:
//
//	notStarted/inprogress/unknown -> keep polling
//	completed                     -> success
//	failed                        -> terminal, never retried
//	wall-clock budget exhausted   -> timeout, distinct from failure
//
// The clock and the sleep are injectable so tests can simulate elapsed
// time without real delays.
type SchemaRegistrar struct {
	tokens driven.TokenProvider
	store  driven.ItemStore
	schema domain.Schema

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSchemaRegistrar creates a registrar for the given schema.
func NewSchemaRegistrar(tokens driven.TokenProvider, store driven.ItemStore, schema domain.Schema) *SchemaRegistrar {
	return &SchemaRegistrar{
		tokens: tokens,
		store:  store,
		schema: schema,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// CurrentSchema fetches the registered schema. Returns
// domain.ErrSchemaNotFound when the connection has none; absence is not
// a failure.
func (r *SchemaRegistrar) CurrentSchema(ctx context.Context) (*domain.Schema, error) {
	token, err := r.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	return r.store.GetSchema(ctx, token)
}

// Register submits the schema document. The document is validated
// locally first - a malformed schema would cost a host round-trip and an
// opaque rejection. On acceptance the host returns an operation
// reference; any other outcome is fatal to this step and carries the
// host's error payload.
func (r *SchemaRegistrar) Register(ctx context.Context) (*domain.Operation, error) {
	if err := validateSchema(r.schema); err != nil {
		return nil, err
	}

	token, err := r.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	ref, err := r.store.RegisterSchema(ctx, token, r.schema)
	if err != nil {
		return nil, fmt.Errorf("register schema: %w", err)
	}

	logger.Info("Schema submitted, operation: %s", ref)
	return &domain.Operation{Ref: ref, Status: domain.StatusNotStarted}, nil
}

// WaitForCompletion polls the operation until a terminal state or until
// the wall-clock budget elapses. Elapsed time, not iteration count,
// bounds the loop: poll latency is not constant.
//
// Failure short-circuits - once failed is observed no further polls
// occur. A failed poll request itself is soft: the status is treated as
// unknown and the loop continues.
func (r *SchemaRegistrar) WaitForCompletion(
	ctx context.Context,
	operationRef string,
	maxWait, pollInterval time.Duration,
) (driving.WaitOutcome, error) {
	token, err := r.tokens.GetToken(ctx)
	if err != nil {
		return driving.WaitTimedOut, fmt.Errorf("get token: %w", err)
	}

	start := r.now()
	for r.now().Sub(start) < maxWait {
		op, err := r.store.GetOperation(ctx, token, operationRef)
		if err != nil {
			logger.Warn("Poll failed: %v", err)
			op = &domain.Operation{Ref: operationRef, Status: domain.StatusUnknown}
		}

		switch op.Status {
		case domain.StatusCompleted:
			logger.Info("Schema build completed")
			return driving.WaitCompleted, nil

		case domain.StatusFailed:
			if op.ErrorMessage != "" {
				return driving.WaitFailed, fmt.Errorf("%w: %s", domain.ErrSchemaBuildFailed, op.ErrorMessage)
			}
			return driving.WaitFailed, domain.ErrSchemaBuildFailed
		}

		logger.Debug("Schema operation %s, waited %s", op.Status, r.now().Sub(start).Round(time.Second))
		if err := r.sleep(ctx, pollInterval); err != nil {
			return driving.WaitTimedOut, err
		}
	}

	return driving.WaitTimedOut, domain.ErrSchemaBuildTimedOut
}

// OperationStatus checks an operation once. Intended for manual re-checks
// after a wait timeout.
func (r *SchemaRegistrar) OperationStatus(ctx context.Context, operationRef string) (*domain.Operation, error) {
	token, err := r.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	return r.store.GetOperation(ctx, token, operationRef)
}

// Operations lists every operation recorded on the connection.
func (r *SchemaRegistrar) Operations(ctx context.Context) ([]domain.Operation, error) {
	token, err := r.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}
	return r.store.ListOperations(ctx, token)
}

// validateSchema rejects documents the host is guaranteed to refuse.
func validateSchema(s domain.Schema) error {
	if s.BaseType != domain.SchemaBaseType {
		return fmt.Errorf("%w: base type must be %s", domain.ErrInvalidInput, domain.SchemaBaseType)
	}
	if len(s.Properties) == 0 {
		return fmt.Errorf("%w: schema has no properties", domain.ErrInvalidInput)
	}
	for _, p := range s.Properties {
		if p.Name == "" {
			return fmt.Errorf("%w: property with empty name", domain.ErrInvalidInput)
		}
		if !p.Type.IsValid() {
			return fmt.Errorf("%w: property %s has unknown type %q", domain.ErrInvalidInput, p.Name, p.Type)
		}
	}
	return nil
}

// sleepContext blocks for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
