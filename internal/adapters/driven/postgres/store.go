// Package postgres implements the RecordStore port against the Project
// Portal database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/custodia-labs/portalsync/internal/core/domain"
	"github.com/custodia-labs/portalsync/internal/core/ports/driven"
)

// Config holds the database connection settings.
type Config struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Ensure the adapter implements the ports.
var (
	_ driven.RecordStoreFactory = (*Factory)(nil)
	_ driven.RecordStore        = (*Store)(nil)
)

// Factory opens one store per sync run, so the connection's lifetime is
// scoped to the run.
type Factory struct {
	cfg Config
}

// NewFactory creates a record store factory.
func NewFactory(cfg Config) *Factory {
	return &Factory{cfg: cfg}
}

// Open connects to the portal database and verifies the connection.
// Failure wraps domain.ErrDatabaseConnect: fatal, the run must abort
// before any upsert.
func (f *Factory) Open(ctx context.Context) (driven.RecordStore, error) {
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=prefer",
		f.cfg.Host, f.cfg.Port, f.cfg.Name, f.cfg.User, f.cfg.Password)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseConnect, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabaseConnect, err)
	}

	return &Store{db: db}, nil
}

// Store reads the four record kinds with fixed projections. Rows come
// back in database order.
type Store struct {
	db *sql.DB
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

const projectsQuery = `
	SELECT
		p.id, p.name, p.code, p.description,
		p.start_date, p.end_date, p.status, p.progress,
		p.budget, p.budget_used, p.priority,
		p.managers, p.team_members, p.tags,
		p.created_at, p.updated_at,
		pc.label AS category_label
	FROM projects p
	LEFT JOIN project_categories pc ON p.category_id = pc.id`

// FetchProjects reads all projects with their category labels.
func (s *Store) FetchProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx, projectsQuery)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		err := rows.Scan(
			&p.ID, &p.Name, &p.Code, &p.Description,
			&p.StartDate, &p.EndDate, &p.Status, &p.Progress,
			&p.Budget, &p.BudgetUsed, &p.Priority,
			pq.Array(&p.Managers), pq.Array(&p.TeamMembers), pq.Array(&p.Tags),
			&p.CreatedAt, &p.UpdatedAt,
			&p.CategoryLabel,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

const milestonesQuery = `
	SELECT
		m.id, m.project_id, m.title, m.description,
		m.due_date, m.status, m.priority, m.assigned_to,
		m.category, m.phase, m.is_critical_path,
		m.created_at, m.updated_at,
		p.name AS project_name, p.code AS project_code
	FROM milestones m
	JOIN projects p ON m.project_id = p.id`

// FetchMilestones reads all milestones joined with their parent
// project's name and code.
func (s *Store) FetchMilestones(ctx context.Context) ([]domain.Milestone, error) {
	rows, err := s.db.QueryContext(ctx, milestonesQuery)
	if err != nil {
		return nil, fmt.Errorf("query milestones: %w", err)
	}
	defer rows.Close()

	var milestones []domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		err := rows.Scan(
			&m.ID, &m.ProjectID, &m.Title, &m.Description,
			&m.DueDate, &m.Status, &m.Priority, &m.AssignedTo,
			&m.Category, &m.Phase, &m.IsCriticalPath,
			&m.CreatedAt, &m.UpdatedAt,
			&m.ProjectName, &m.ProjectCode,
		)
		if err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

const risksQuery = `
	SELECT
		r.id, r.project_ids, r.title, r.description,
		r.deadline, r.probability, r.impact, r.status,
		r.mitigation, r.owners, r.is_critical_path,
		r.created_at, r.updated_at
	FROM risks r`

// FetchRisks reads all risks.
func (s *Store) FetchRisks(ctx context.Context) ([]domain.Risk, error) {
	rows, err := s.db.QueryContext(ctx, risksQuery)
	if err != nil {
		return nil, fmt.Errorf("query risks: %w", err)
	}
	defer rows.Close()

	var risks []domain.Risk
	for rows.Next() {
		var r domain.Risk
		err := rows.Scan(
			&r.ID, pq.Array(&r.ProjectIDs), &r.Title, &r.Description,
			&r.Deadline, &r.Probability, &r.Impact, &r.Status,
			&r.Mitigation, pq.Array(&r.Owners), &r.IsCriticalPath,
			&r.CreatedAt, &r.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan risk: %w", err)
		}
		risks = append(risks, r)
	}
	return risks, rows.Err()
}

const issuesQuery = `
	SELECT
		i.id, i.project_ids, i.title, i.description,
		i.due_date, i.severity, i.status, i.owners,
		i.root_cause, i.is_critical_path,
		i.created_at, i.updated_at
	FROM issues i`

// FetchIssues reads all issues.
func (s *Store) FetchIssues(ctx context.Context) ([]domain.Issue, error) {
	rows, err := s.db.QueryContext(ctx, issuesQuery)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		var i domain.Issue
		err := rows.Scan(
			&i.ID, pq.Array(&i.ProjectIDs), &i.Title, &i.Description,
			&i.DueDate, &i.Severity, &i.Status, pq.Array(&i.Owners),
			&i.RootCause, &i.IsCriticalPath,
			&i.CreatedAt, &i.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}

// FetchProjectRefs resolves project ids to name/code pairs. An empty id
// set returns an empty map without issuing a query - this is a contract,
// it keeps "id = ANY(empty)" out of the database.
func (s *Store) FetchProjectRefs(ctx context.Context, ids []string) (map[string]domain.ProjectRef, error) {
	refs := make(map[string]domain.ProjectRef)
	if len(ids) == 0 {
		return refs, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, code FROM projects WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query project refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var ref domain.ProjectRef
		if err := rows.Scan(&id, &ref.Name, &ref.Code); err != nil {
			return nil, fmt.Errorf("scan project ref: %w", err)
		}
		refs[id] = ref
	}
	return refs, rows.Err()
}
