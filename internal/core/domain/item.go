package domain

import "fmt"

// ItemKind identifies which source record variant an external item was
// built from. The kind prefixes the item id.
type ItemKind string

// Available item kinds, in sync order.
const (
	KindProject   ItemKind = "project"
	KindMilestone ItemKind = "milestone"
	KindRisk      ItemKind = "risk"
	KindIssue     ItemKind = "issue"
)

// ItemID derives the stable external item id for a source record.
// The id is deterministic across runs so upserts replace earlier versions.
func ItemID(kind ItemKind, sourceID string) string {
	return fmt.Sprintf("%s-%s", kind, sourceID)
}

// ItemContent is the denormalised full-text blob attached to an item.
// It feeds relevance ranking, not structured retrieval.
type ItemContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ACLEntry scopes which principals may see an item in search results.
type ACLEntry struct {
	Type       string `json:"type"`
	Value      string `json:"value"`
	AccessType string `json:"accessType"`
}

// EveryoneACL grants read access to all principals. The portal has no
// per-record access control; every indexed item is tenant-visible.
func EveryoneACL() []ACLEntry {
	return []ACLEntry{{Type: "everyone", Value: "everyone", AccessType: "grant"}}
}

// ExternalItem is the unit of upsert: a source record materialised into
// the connection's schema. Properties must match the registered schema's
// names and types exactly or the item store rejects the upsert.
type ExternalItem struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
	Content    ItemContent    `json:"content"`
	ACL        []ACLEntry     `json:"acl"`
}
