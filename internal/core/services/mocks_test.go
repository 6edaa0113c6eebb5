package services

import (
	"context"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driven"
)

// --- Shared mock implementations for service tests ---

// mockTokenProvider implements driven.TokenProvider.
type mockTokenProvider struct {
	token string
	err   error
	calls int
}

func (m *mockTokenProvider) GetToken(_ context.Context) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

// mockItemStore implements driven.ItemStore. Operation polls are served
// from the ops slice in order; the last entry repeats once exhausted.
type mockItemStore struct {
	createdConn *domain.Connection
	createErr   error

	conn   *domain.Connection
	getErr error

	connections []domain.Connection
	listErr     error

	registerRef string
	registerErr error

	schema    *domain.Schema
	schemaErr error

	ops     []domain.Operation
	opErrs  []error
	opCalls int

	listedOps  []domain.Operation
	listOpsErr error

	upsertErrs map[string]error
	upserted   []string
	tokens     []string

	deleted   []string
	deleteErr error

	itemCount int
	countErr  error
}

var _ driven.ItemStore = (*mockItemStore)(nil)

func (m *mockItemStore) CreateConnection(_ context.Context, _ string, conn domain.Connection) (*domain.Connection, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.createdConn != nil {
		return m.createdConn, nil
	}
	created := conn
	created.State = "ready"
	return &created, nil
}

func (m *mockItemStore) GetConnection(_ context.Context, _ string) (*domain.Connection, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.conn, nil
}

func (m *mockItemStore) ListConnections(_ context.Context, _ string) ([]domain.Connection, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.connections, nil
}

func (m *mockItemStore) RegisterSchema(_ context.Context, _ string, _ domain.Schema) (string, error) {
	if m.registerErr != nil {
		return "", m.registerErr
	}
	return m.registerRef, nil
}

func (m *mockItemStore) GetSchema(_ context.Context, _ string) (*domain.Schema, error) {
	if m.schemaErr != nil {
		return nil, m.schemaErr
	}
	return m.schema, nil
}

func (m *mockItemStore) GetOperation(_ context.Context, _, ref string) (*domain.Operation, error) {
	i := m.opCalls
	m.opCalls++
	if i >= len(m.ops) {
		i = len(m.ops) - 1
	}
	if i < len(m.opErrs) && m.opErrs[i] != nil {
		return nil, m.opErrs[i]
	}
	op := m.ops[i]
	if op.Ref == "" {
		op.Ref = ref
	}
	return &op, nil
}

func (m *mockItemStore) ListOperations(_ context.Context, _ string) ([]domain.Operation, error) {
	return m.listedOps, m.listOpsErr
}

func (m *mockItemStore) UpsertItem(_ context.Context, token string, item *domain.ExternalItem) error {
	if err, ok := m.upsertErrs[item.ID]; ok {
		return err
	}
	m.upserted = append(m.upserted, item.ID)
	m.tokens = append(m.tokens, token)
	return nil
}

func (m *mockItemStore) DeleteItem(_ context.Context, _, itemID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, itemID)
	return nil
}

func (m *mockItemStore) CountItems(_ context.Context, _ string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.itemCount, nil
}

// mockRecordStore implements driven.RecordStore.
type mockRecordStore struct {
	projects   []domain.Project
	milestones []domain.Milestone
	risks      []domain.Risk
	issues     []domain.Issue
	refs       map[string]domain.ProjectRef

	projectsErr   error
	milestonesErr error
	risksErr      error
	issuesErr     error
	refsErr       error

	refsCalls [][]string
	closed    bool
}

var _ driven.RecordStore = (*mockRecordStore)(nil)

func (m *mockRecordStore) FetchProjects(_ context.Context) ([]domain.Project, error) {
	return m.projects, m.projectsErr
}

func (m *mockRecordStore) FetchMilestones(_ context.Context) ([]domain.Milestone, error) {
	return m.milestones, m.milestonesErr
}

func (m *mockRecordStore) FetchRisks(_ context.Context) ([]domain.Risk, error) {
	return m.risks, m.risksErr
}

func (m *mockRecordStore) FetchIssues(_ context.Context) ([]domain.Issue, error) {
	return m.issues, m.issuesErr
}

func (m *mockRecordStore) FetchProjectRefs(_ context.Context, ids []string) (map[string]domain.ProjectRef, error) {
	m.refsCalls = append(m.refsCalls, ids)
	if m.refsErr != nil {
		return nil, m.refsErr
	}
	out := make(map[string]domain.ProjectRef)
	for _, id := range ids {
		if ref, ok := m.refs[id]; ok {
			out[id] = ref
		}
	}
	return out, nil
}

func (m *mockRecordStore) Close() error {
	m.closed = true
	return nil
}

// mockRecordFactory implements driven.RecordStoreFactory.
type mockRecordFactory struct {
	store   *mockRecordStore
	openErr error
	opens   int
}

var _ driven.RecordStoreFactory = (*mockRecordFactory)(nil)

func (m *mockRecordFactory) Open(_ context.Context) (driven.RecordStore, error) {
	m.opens++
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.store, nil
}
