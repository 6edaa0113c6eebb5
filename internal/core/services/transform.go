package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/portalsync/internal/core/domain"
)

// Transformer maps source records into external items. All four
// transforms are pure and total: the same record (and project lookup)
// always produces an identical item, and well-formed input never fails.
type Transformer struct {
	baseURL string
}

// NewTransformer creates a transformer generating deep links under the
// given application base URL.
func NewTransformer(appBaseURL string) *Transformer {
	return &Transformer{baseURL: strings.TrimRight(appBaseURL, "/")}
}

// Defaults applied when optional scalar fields are absent. Budget has no
// default: a missing budget stays null so consumers can distinguish "no
// budget recorded" from "zero budget".
const (
	defaultPriority = "medium"
	defaultSeverity = "medium"
)

// Project transforms a project row into an external item.
func (t *Transformer) Project(p *domain.Project) *domain.ExternalItem {
	priority := strOr(p.Priority, defaultPriority)
	progress := int64Or(p.Progress, 0)

	return &domain.ExternalItem{
		ID: domain.ItemID(domain.KindProject, p.ID),
		Properties: map[string]any{
			"itemType":             string(domain.KindProject),
			"title":                p.Name,
			"description":          strOr(p.Description, ""),
			"url":                  fmt.Sprintf("%s/projects/%s", t.baseURL, p.ID),
			"lastModifiedDateTime": isoTime(p.UpdatedAt),
			"createdDateTime":      isoTime(p.CreatedAt),
			"projectCode":          p.Code,
			"projectName":          p.Name,
			"projectId":            p.ID,
			"status":               p.Status,
			"priority":             priority,
			"progress":             progress,
			"startDate":            isoTime(p.StartDate),
			"endDate":              isoTime(p.EndDate),
			"category":             strOr(p.CategoryLabel, ""),
			"managers":             sliceOr(p.Managers),
			"teamMembers":          sliceOr(p.TeamMembers),
			"tags":                 sliceOr(p.Tags),
			"budget":               floatOrNull(p.Budget),
			"budgetUsed":           floatOrNull(p.BudgetUsed),
		},
		Content: textContent(
			"Project Name: "+p.Name,
			"Project Code: "+p.Code,
			"Status: "+p.Status,
			fmt.Sprintf("Progress: %d%%", progress),
			"Priority: "+priority,
			strOr(p.Description, ""),
		),
		ACL: domain.EveryoneACL(),
	}
}

// Milestone transforms a milestone row into an external item.
func (t *Transformer) Milestone(m *domain.Milestone) *domain.ExternalItem {
	return &domain.ExternalItem{
		ID: domain.ItemID(domain.KindMilestone, m.ID),
		Properties: map[string]any{
			"itemType":             string(domain.KindMilestone),
			"title":                m.Title,
			"description":          strOr(m.Description, ""),
			"url":                  fmt.Sprintf("%s/projects/%s/milestones/%s", t.baseURL, m.ProjectID, m.ID),
			"lastModifiedDateTime": isoTime(m.UpdatedAt),
			"createdDateTime":      isoTime(m.CreatedAt),
			"projectCode":          m.ProjectCode,
			"projectName":          m.ProjectName,
			"projectId":            m.ProjectID,
			"status":               m.Status,
			"priority":             strOr(m.Priority, defaultPriority),
			"dueDate":              isoTime(m.DueDate),
			"category":             strOr(m.Category, ""),
			"phase":                strOr(m.Phase, ""),
			"owners":               singletonOrEmpty(m.AssignedTo),
			"isCriticalPath":       boolOr(m.IsCriticalPath),
		},
		Content: textContent(
			"Milestone: "+m.Title,
			fmt.Sprintf("Project: %s (%s)", m.ProjectName, m.ProjectCode),
			"Status: "+m.Status,
			"Due Date: "+timeOrNA(m.DueDate),
			"Phase: "+strOr(m.Phase, "N/A"),
			strOr(m.Description, ""),
		),
		ACL: domain.EveryoneACL(),
	}
}

// Risk transforms a risk row into an external item. refs resolves the
// risk's project ids to names and codes; unresolved ids contribute
// nothing to the joined strings.
//
// projectId keeps only the first associated project id while
// projectName/projectCode join all resolved ones. The asymmetry comes
// from the portal's own item contract and is preserved deliberately.
func (t *Transformer) Risk(r *domain.Risk, refs map[string]domain.ProjectRef) *domain.ExternalItem {
	names, codes := joinRefs(r.ProjectIDs, refs)

	return &domain.ExternalItem{
		ID: domain.ItemID(domain.KindRisk, r.ID),
		Properties: map[string]any{
			"itemType":             string(domain.KindRisk),
			"title":                r.Title,
			"description":          strOr(r.Description, ""),
			"url":                  fmt.Sprintf("%s/risks/%s", t.baseURL, r.ID),
			"lastModifiedDateTime": isoTime(r.UpdatedAt),
			"createdDateTime":      isoTime(r.CreatedAt),
			"projectCode":          codes,
			"projectName":          names,
			"projectId":            firstOrEmpty(r.ProjectIDs),
			"status":               r.Status,
			"dueDate":              isoTime(r.Deadline),
			"probability":          r.Probability,
			"impact":               r.Impact,
			"owners":               sliceOr(r.Owners),
			"isCriticalPath":       boolOr(r.IsCriticalPath),
			"mitigation":           strOr(r.Mitigation, ""),
		},
		Content: textContent(
			"Risk: "+r.Title,
			"Project: "+names,
			"Status: "+r.Status,
			fmt.Sprintf("Probability: %s | Impact: %s", r.Probability, r.Impact),
			"Deadline: "+timeOrNA(r.Deadline),
			"Mitigation: "+strOr(r.Mitigation, "N/A"),
			strOr(r.Description, ""),
		),
		ACL: domain.EveryoneACL(),
	}
}

// Issue transforms an issue row into an external item. Shares the
// single-valued projectId vs joined projectName/projectCode behaviour
// with Risk.
func (t *Transformer) Issue(i *domain.Issue, refs map[string]domain.ProjectRef) *domain.ExternalItem {
	names, codes := joinRefs(i.ProjectIDs, refs)
	severity := strOr(i.Severity, defaultSeverity)

	return &domain.ExternalItem{
		ID: domain.ItemID(domain.KindIssue, i.ID),
		Properties: map[string]any{
			"itemType":             string(domain.KindIssue),
			"title":                i.Title,
			"description":          strOr(i.Description, ""),
			"url":                  fmt.Sprintf("%s/issues/%s", t.baseURL, i.ID),
			"lastModifiedDateTime": isoTime(i.UpdatedAt),
			"createdDateTime":      isoTime(i.CreatedAt),
			"projectCode":          codes,
			"projectName":          names,
			"projectId":            firstOrEmpty(i.ProjectIDs),
			"status":               i.Status,
			"dueDate":              isoTime(i.DueDate),
			"severity":             severity,
			"owners":               sliceOr(i.Owners),
			"isCriticalPath":       boolOr(i.IsCriticalPath),
			"rootCause":            strOr(i.RootCause, ""),
		},
		Content: textContent(
			"Issue: "+i.Title,
			"Project: "+names,
			"Status: "+i.Status,
			"Severity: "+severity,
			"Due Date: "+timeOrNA(i.DueDate),
			"Root Cause: "+strOr(i.RootCause, "N/A"),
			strOr(i.Description, ""),
		),
		ACL: domain.EveryoneACL(),
	}
}

// isoTime serialises a timestamp in the canonical RFC 3339 form, or nil
// when absent. Unzoned database timestamps arrive in UTC and render with
// a "Z" suffix; zoned ones keep their offset.
func isoTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

// timeOrNA renders a timestamp for content lines.
func timeOrNA(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(time.RFC3339)
}

// joinRefs resolves project ids in record order and joins the names and
// codes with ", ". Ids missing from the lookup are skipped.
func joinRefs(ids []string, refs map[string]domain.ProjectRef) (names, codes string) {
	var nameParts, codeParts []string
	for _, id := range ids {
		ref, ok := refs[id]
		if !ok {
			continue
		}
		nameParts = append(nameParts, ref.Name)
		codeParts = append(codeParts, ref.Code)
	}
	return strings.Join(nameParts, ", "), strings.Join(codeParts, ", ")
}

func textContent(lines ...string) domain.ItemContent {
	return domain.ItemContent{Type: "text", Value: strings.Join(lines, "\n")}
}

func strOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func int64Or(n *int64, def int64) int64 {
	if n == nil {
		return def
	}
	return *n
}

func boolOr(b *bool) bool {
	return b != nil && *b
}

// floatOrNull keeps absent numerics null rather than zero.
func floatOrNull(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func sliceOr(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func singletonOrEmpty(s *string) []string {
	if s == nil || *s == "" {
		return []string{}
	}
	return []string{*s}
}

func firstOrEmpty(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
