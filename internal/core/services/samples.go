package services

import (
	"strings"

	"github.com/custodia-labs/portalsync/internal/core/domain"
)

// SampleItems returns four hand-written items, one per record kind, for
// test-mode sync runs. They exercise the full item shape (properties,
// content, ACL) without touching the portal database.
func SampleItems(appBaseURL string) []domain.ExternalItem {
	base := strings.TrimRight(appBaseURL, "/")

	return []domain.ExternalItem{
		{
			ID: "project-test-001",
			Properties: map[string]any{
				"itemType":    "project",
				"title":       "Sample Project Alpha",
				"description": "A sample project for connectivity checks",
				"url":         base + "/projects/test-001",
				"projectCode": "ALPHA-001",
				"projectName": "Sample Project Alpha",
				"projectId":   "test-001",
				"status":      "C2",
				"priority":    "high",
				"progress":    int64(45),
				"category":    "AI Projects",
			},
			Content: domain.ItemContent{
				Type:  "text",
				Value: "Sample Project Alpha\nProject Code: ALPHA-001\nStatus: C2\nProgress: 45%",
			},
			ACL: domain.EveryoneACL(),
		},
		{
			ID: "milestone-test-001",
			Properties: map[string]any{
				"itemType":    "milestone",
				"title":       "Alpha Milestone 1",
				"description": "The first milestone",
				"url":         base + "/projects/test-001/milestones/test-m-001",
				"projectCode": "ALPHA-001",
				"projectName": "Sample Project Alpha",
				"projectId":   "test-001",
				"status":      "in_progress",
				"priority":    "high",
				"dueDate":     "2025-01-15T00:00:00Z",
				"phase":       "C2",
			},
			Content: domain.ItemContent{
				Type:  "text",
				Value: "Alpha Milestone 1\nProject: Sample Project Alpha\nStatus: in_progress",
			},
			ACL: domain.EveryoneACL(),
		},
		{
			ID: "risk-test-001",
			Properties: map[string]any{
				"itemType":    "risk",
				"title":       "Sample Risk: schedule slip",
				"description": "Schedule may slip due to resource shortage",
				"url":         base + "/risks/test-r-001",
				"projectCode": "ALPHA-001",
				"projectName": "Sample Project Alpha",
				"status":      "open",
				"probability": "medium",
				"impact":      "high",
				"mitigation":  "Add staffing",
			},
			Content: domain.ItemContent{
				Type:  "text",
				Value: "Risk: schedule slip\nProbability: medium\nImpact: high",
			},
			ACL: domain.EveryoneACL(),
		},
		{
			ID: "issue-test-001",
			Properties: map[string]any{
				"itemType":    "issue",
				"title":       "Sample Issue: API latency",
				"description": "API response times are too high",
				"url":         base + "/issues/test-i-001",
				"projectCode": "ALPHA-001",
				"projectName": "Sample Project Alpha",
				"status":      "open",
				"severity":    "high",
				"rootCause":   "Unoptimised database queries",
			},
			Content: domain.ItemContent{
				Type:  "text",
				Value: "Issue: API latency\nSeverity: high\nStatus: open",
			},
			ACL: domain.EveryoneACL(),
		},
	}
}
