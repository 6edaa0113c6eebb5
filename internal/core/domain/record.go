package domain

import "time"

// Source records mirror the Project Portal database projections. Optional
// columns are pointers so transforms can distinguish absent from zero
// (a project with no recorded budget is not a project with budget 0).

// Project is a row from the projects table joined with its category label.
type Project struct {
	ID            string
	Name          string
	Code          string
	Description   *string
	StartDate     *time.Time
	EndDate       *time.Time
	Status        string
	Progress      *int64
	Budget        *float64
	BudgetUsed    *float64
	Priority      *string
	Managers      []string
	TeamMembers   []string
	Tags          []string
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
	CategoryLabel *string
}

// Milestone is a row from the milestones table joined with its parent
// project's name and code.
type Milestone struct {
	ID             string
	ProjectID      string
	Title          string
	Description    *string
	DueDate        *time.Time
	Status         string
	Priority       *string
	AssignedTo     *string
	Category       *string
	Phase          *string
	IsCriticalPath *bool
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
	ProjectName    string
	ProjectCode    string
}

// Risk is a row from the risks table. A risk may span several projects;
// ProjectIDs is resolved to names and codes at transform time.
type Risk struct {
	ID             string
	ProjectIDs     []string
	Title          string
	Description    *string
	Deadline       *time.Time
	Probability    string
	Impact         string
	Status         string
	Mitigation     *string
	Owners         []string
	IsCriticalPath *bool
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

// Issue is a row from the issues table. Like Risk, it may span several
// projects.
type Issue struct {
	ID             string
	ProjectIDs     []string
	Title          string
	Description    *string
	DueDate        *time.Time
	Severity       *string
	Status         string
	Owners         []string
	RootCause      *string
	IsCriticalPath *bool
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

// ProjectRef is the name/code pair resolved for a project id when
// transforming risks and issues.
type ProjectRef struct {
	Name string
	Code string
}
