package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driven"
	"github.com/custodia-labs/portalsync/internal/core/ports/driving"
	"github.com/custodia-labs/portalsync/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator drives the fetch -> transform -> upsert pipeline for
// all four record kinds, in the fixed order project, milestone, risk,
// issue. Every run re-pushes all rows; there is no diffing and no
// deletion of items whose source rows have gone.
type SyncOrchestrator struct {
	tokens      driven.TokenProvider
	store       driven.ItemStore
	records     driven.RecordStoreFactory
	transformer *Transformer
}

// NewSyncOrchestrator creates a sync orchestrator.
func NewSyncOrchestrator(
	tokens driven.TokenProvider,
	store driven.ItemStore,
	records driven.RecordStoreFactory,
	transformer *Transformer,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		tokens:      tokens,
		store:       store,
		records:     records,
		transformer: transformer,
	}
}

// SyncAll synchronises every source record into the item store.
//
// Token and database failures are fatal and abort before any upsert.
// Item-level upsert failures are isolated: they are recorded in the
// report and never prevent later items or later record kinds. The
// database connection spans the whole run and is released on every exit
// path.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (o *SyncOrchestrator) SyncAll(ctx context.Context) (*driving.SyncReport, error) {
	report := &driving.SyncReport{RunID: uuid.NewString()}

	token, err := o.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	records, err := o.records.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer records.Close()

	logger.Section("Sync " + report.RunID)

	// 1. Projects
	projects, err := records.FetchProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	logger.Info("Syncing %d projects", len(projects))
	for i := range projects {
		o.upsert(ctx, token, o.transformer.Project(&projects[i]), report)
	}

	// 2. Milestones
	milestones, err := records.FetchMilestones(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch milestones: %w", err)
	}
	logger.Info("Syncing %d milestones", len(milestones))
	for i := range milestones {
		o.upsert(ctx, token, o.transformer.Milestone(&milestones[i]), report)
	}

	// 3. Risks - resolve the union of referenced project ids once for
	// the whole batch, not per record.
	risks, err := records.FetchRisks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch risks: %w", err)
	}
	riskIDs := make([][]string, len(risks))
	for i := range risks {
		riskIDs[i] = risks[i].ProjectIDs
	}
	riskRefs, err := records.FetchProjectRefs(ctx, unionIDs(riskIDs))
	if err != nil {
		return nil, fmt.Errorf("fetch project refs: %w", err)
	}
	logger.Info("Syncing %d risks", len(risks))
	for i := range risks {
		o.upsert(ctx, token, o.transformer.Risk(&risks[i], riskRefs), report)
	}

	// 4. Issues
	issues, err := records.FetchIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch issues: %w", err)
	}
	issueIDs := make([][]string, len(issues))
	for i := range issues {
		issueIDs[i] = issues[i].ProjectIDs
	}
	issueRefs, err := records.FetchProjectRefs(ctx, unionIDs(issueIDs))
	if err != nil {
		return nil, fmt.Errorf("fetch project refs: %w", err)
	}
	logger.Info("Syncing %d issues", len(issues))
	for i := range issues {
		o.upsert(ctx, token, o.transformer.Issue(&issues[i], issueRefs), report)
	}

	logger.Info("Sync complete: %d succeeded, %d failed", report.Success, report.Failed)
	return report, nil
}

// SyncSamples pushes the hardcoded sample items. Verifies token and item
// store connectivity without a live portal database.
func (o *SyncOrchestrator) SyncSamples(ctx context.Context) (*driving.SyncReport, error) {
	report := &driving.SyncReport{RunID: uuid.NewString()}

	token, err := o.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	items := SampleItems(o.transformer.baseURL)
	logger.Info("Syncing %d sample items", len(items))
	for i := range items {
		o.upsert(ctx, token, &items[i], report)
	}

	return report, nil
}

// upsert pushes one item and records the outcome. Failures are isolated
// per item; the run continues.
func (o *SyncOrchestrator) upsert(ctx context.Context, token string, item *domain.ExternalItem, report *driving.SyncReport) {
	if err := o.store.UpsertItem(ctx, token, item); err != nil {
		report.Failed++
		report.FailedIDs = append(report.FailedIDs, item.ID)
		logger.Warn("Upsert failed for %s: %v", item.ID, err)
		return
	}
	report.Success++
	logger.Debug("Upserted %s", item.ID)
}

// unionIDs collects the distinct ids across batches, preserving
// first-seen order.
func unionIDs(batches [][]string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, batch := range batches {
		for _, id := range batch {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
