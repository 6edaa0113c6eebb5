package driven

import (
	"context"

	"github.com/custodia-labs/portalsync/internal/core/domain"
)

// RecordStore reads source records from the Project Portal database.
// Rows come back in database order; no further ordering is guaranteed.
type RecordStore interface {
	FetchProjects(ctx context.Context) ([]domain.Project, error)
	FetchMilestones(ctx context.Context) ([]domain.Milestone, error)
	FetchRisks(ctx context.Context) ([]domain.Risk, error)
	FetchIssues(ctx context.Context) ([]domain.Issue, error)

	// FetchProjectRefs resolves project ids to their name/code pairs.
	// An empty id set returns an empty map without touching the
	// database; this is a contract, not an optimisation.
	FetchProjectRefs(ctx context.Context, ids []string) (map[string]domain.ProjectRef, error)

	// Close releases the underlying connection.
	Close() error
}

// RecordStoreFactory opens a record store for the duration of one sync
// run. Connect failure is fatal and aborts the run before any upsert;
// the orchestrator guarantees Close on every exit path.
type RecordStoreFactory interface {
	Open(ctx context.Context) (RecordStore, error)
}
