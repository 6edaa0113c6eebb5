package domain

// PropertyType enumerates the value types the item store accepts for
// schema properties.
type PropertyType string

// Available property types.
const (
	TypeString           PropertyType = "String"
	TypeStringCollection PropertyType = "StringCollection"
	TypeInt64            PropertyType = "Int64"
	TypeDouble           PropertyType = "Double"
	TypeBoolean          PropertyType = "Boolean"
	TypeDateTime         PropertyType = "DateTime"
)

// IsValid returns true if the property type is recognised.
func (t PropertyType) IsValid() bool {
	switch t {
	case TypeString, TypeStringCollection, TypeInt64, TypeDouble, TypeBoolean, TypeDateTime:
		return true
	default:
		return false
	}
}

// Property defines a single typed field in the connection schema.
type Property struct {
	Name          string       `json:"name"`
	Type          PropertyType `json:"type"`
	IsSearchable  bool         `json:"isSearchable"`
	IsRetrievable bool         `json:"isRetrievable"`
	IsQueryable   bool         `json:"isQueryable"`
	IsRefinable   bool         `json:"isRefinable,omitempty"`

	// Labels are semantic tags ("title", "url", ...) understood by
	// downstream search and assistant surfaces.
	Labels []string `json:"labels,omitempty"`
}

// Schema is the typed property contract enforced for all items in a
// connection. Registration is asynchronous; see Operation.
type Schema struct {
	BaseType   string     `json:"baseType"`
	Properties []Property `json:"properties"`
}

// SchemaBaseType is the only base type external connections accept.
const SchemaBaseType = "microsoft.graph.externalItem"

// OperationStatus is the lifecycle state of an asynchronous schema
// registration operation.
type OperationStatus string

// Operation lifecycle: notStarted -> inprogress -> completed | failed.
// StatusUnknown is reported when a poll could not determine the state.
const (
	StatusNotStarted OperationStatus = "notStarted"
	StatusInProgress OperationStatus = "inprogress"
	StatusCompleted  OperationStatus = "completed"
	StatusFailed     OperationStatus = "failed"
	StatusUnknown    OperationStatus = "unknown"
)

// IsTerminal returns true once the operation can make no further progress.
func (s OperationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Operation tracks an asynchronous schema registration.
type Operation struct {
	// Ref is the URL or id used to poll the operation.
	Ref string

	// Status is the last observed lifecycle state.
	Status OperationStatus

	// ErrorMessage carries the host's failure detail when Status is failed.
	ErrorMessage string
}

// DefaultSchema returns the full Project Portal property schema: the
// semantic-label fields required by Copilot, the project fields, the
// people fields, the risk/issue fields and the financial fields.
func DefaultSchema() Schema {
	return Schema{
		BaseType: SchemaBaseType,
		Properties: []Property{
			// Semantic-label fields required by downstream consumers.
			{Name: "itemType", Type: TypeString, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "title", Type: TypeString, IsSearchable: true, IsRetrievable: true, IsQueryable: true, Labels: []string{"title"}},
			{Name: "description", Type: TypeString, IsSearchable: true, IsRetrievable: true},
			{Name: "url", Type: TypeString, IsRetrievable: true, Labels: []string{"url"}},
			{Name: "iconUrl", Type: TypeString, IsRetrievable: true, Labels: []string{"iconUrl"}},
			{Name: "lastModifiedDateTime", Type: TypeDateTime, IsRetrievable: true, IsQueryable: true, IsRefinable: true, Labels: []string{"lastModifiedDateTime"}},
			{Name: "createdDateTime", Type: TypeDateTime, IsRetrievable: true, IsQueryable: true, IsRefinable: true, Labels: []string{"createdDateTime"}},
			{Name: "lastModifiedBy", Type: TypeString, IsRetrievable: true, IsQueryable: true, Labels: []string{"lastModifiedBy"}},

			// Project fields.
			{Name: "projectCode", Type: TypeString, IsSearchable: true, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "projectName", Type: TypeString, IsSearchable: true, IsRetrievable: true, IsQueryable: true},
			{Name: "projectId", Type: TypeString, IsRetrievable: true, IsQueryable: true},
			{Name: "status", Type: TypeString, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "priority", Type: TypeString, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "progress", Type: TypeInt64, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "startDate", Type: TypeDateTime, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "endDate", Type: TypeDateTime, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "dueDate", Type: TypeDateTime, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "category", Type: TypeString, IsSearchable: true, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "phase", Type: TypeString, IsRetrievable: true, IsQueryable: true, IsRefinable: true},

			// People fields.
			{Name: "owners", Type: TypeStringCollection, IsSearchable: true, IsRetrievable: true, IsQueryable: true},
			{Name: "managers", Type: TypeStringCollection, IsSearchable: true, IsRetrievable: true, IsQueryable: true},
			{Name: "teamMembers", Type: TypeStringCollection, IsSearchable: true, IsRetrievable: true},
			{Name: "tags", Type: TypeStringCollection, IsSearchable: true, IsRetrievable: true, IsQueryable: true, IsRefinable: true},

			// Risk/issue fields.
			{Name: "severity", Type: TypeString, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "probability", Type: TypeString, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "impact", Type: TypeString, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "isCriticalPath", Type: TypeBoolean, IsRetrievable: true, IsQueryable: true},
			{Name: "mitigation", Type: TypeString, IsSearchable: true, IsRetrievable: true},
			{Name: "rootCause", Type: TypeString, IsSearchable: true, IsRetrievable: true},

			// Financial fields.
			{Name: "budget", Type: TypeDouble, IsRetrievable: true, IsQueryable: true, IsRefinable: true},
			{Name: "budgetUsed", Type: TypeDouble, IsRetrievable: true, IsQueryable: true},
		},
	}
}
