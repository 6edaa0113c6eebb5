package driving

import "context"

// SyncOrchestrator drives the fetch -> transform -> upsert pipeline.
type SyncOrchestrator interface {
	// SyncAll re-pushes every source record to the item store. Item
	// failures are isolated and collected; token or database failures
	// are fatal and abort before any upsert.
	SyncAll(ctx context.Context) (*SyncReport, error)

	// SyncSamples pushes four hardcoded sample items instead of reading
	// the database. Used to verify connectivity without a live portal.
	SyncSamples(ctx context.Context) (*SyncReport, error)
}

// SyncReport summarises one sync run.
type SyncReport struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// Success is the number of items upserted.
	Success int

	// Failed is the number of items the store rejected.
	Failed int

	// FailedIDs lists the ids of rejected items, in attempt order.
	FailedIDs []string
}
