package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/portalsync/internal/core/domain"
)

// WaitOutcome is the terminal result of waiting on a schema operation.
type WaitOutcome int

// Wait outcomes. Timeout is distinct from failure: a timed-out operation
// may still complete server-side and should be re-checked later.
const (
	WaitCompleted WaitOutcome = iota
	WaitFailed
	WaitTimedOut
)

// String returns the human-readable outcome name.
func (o WaitOutcome) String() string {
	switch o {
	case WaitCompleted:
		return "completed"
	case WaitFailed:
		return "failed"
	case WaitTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// SchemaRegistrar submits the property schema and tracks the asynchronous
// registration operation to a terminal state.
type SchemaRegistrar interface {
	// CurrentSchema fetches the registered schema, or
	// domain.ErrSchemaNotFound when the connection has none.
	CurrentSchema(ctx context.Context) (*domain.Schema, error)

	// Register submits the default schema and returns the operation to
	// poll. Host rejection is fatal to the registration step.
	Register(ctx context.Context) (*domain.Operation, error)

	// WaitForCompletion polls the operation until it completes, fails,
	// or the wall-clock budget elapses. Failure is terminal and
	// short-circuits; no further polls occur after it is observed.
	WaitForCompletion(ctx context.Context, operationRef string, maxWait, pollInterval time.Duration) (WaitOutcome, error)

	// OperationStatus checks an operation once, for manual re-checks
	// after a timeout.
	OperationStatus(ctx context.Context, operationRef string) (*domain.Operation, error)

	// Operations lists every operation recorded on the connection, for
	// when the operation reference has been lost.
	Operations(ctx context.Context) ([]domain.Operation, error)
}
