package domain

type Action string

const (
	ActionCreate    Action = "Create"
	ActionDrop      Action = "Drop"
	ActionDifferent Action = "Different"
	ActionIdentical Action = "Identical"
	// ActionError marks a pairing whose comparison could not be completed.
	ActionError Action = "Error"
)

type DifferenceKind string

const (
	DiffNone                  DifferenceKind = ""
	DiffTypeMismatch          DifferenceKind = "type mismatch"
	DiffColumns               DifferenceKind = "column"
	DiffIndexes               DifferenceKind = "index"
	DiffForeignKeys           DifferenceKind = "foreign key"
	DiffDefinition            DifferenceKind = "definition"
	DiffDefinitionUnavailable DifferenceKind = "definition unavailable"
	DiffSessionFlags          DifferenceKind = "session flags"
)

// ObjectDetail is the per-side payload handed to presentation.
// Only the fields relevant to the object type and difference kind are set.
type ObjectDetail struct {
	TypeCode    string       `json:"type_code,omitempty"`
	Definition  string       `json:"definition,omitempty"`
	Columns     []Column     `json:"columns,omitempty"`
	Indexes     []Index      `json:"indexes,omitempty"`
	ForeignKeys []ForeignKey `json:"foreign_keys,omitempty"`
}

type MemberChangeKind string

const (
	MemberOnlyInSource MemberChangeKind = "only in source"
	MemberOnlyInTarget MemberChangeKind = "only in target"
	MemberModified     MemberChangeKind = "modified"
)

// MemberChange names one column, index or foreign key that differs within a facet.
type MemberChange struct {
	Name string
	Kind MemberChangeKind
}

type ComparisonResult struct {
	Identity       ObjectIdentity
	ObjectType     ObjectType
	TypeCode       string
	Action         Action
	DifferenceKind DifferenceKind
	SourceDetail   *ObjectDetail
	TargetDetail   *ObjectDetail
	Members        []MemberChange
	Error          error
}
