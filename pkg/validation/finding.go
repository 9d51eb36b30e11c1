package validation

// Severity classifies a finding. Errors block execution; warnings are
// advisory and the caller may run the workflow anyway.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code is a stable machine-readable finding identifier. The editor UI
// keys its repair actions off these values, so they never change meaning.
type Code string

const (
	CodeCircularDependency  Code = "CIRCULAR_DEPENDENCY"
	CodeMissingField        Code = "MISSING_FIELD_REFERENCE"
	CodeInvalidEntryPoint   Code = "INVALID_ENTRY_POINT"
	CodeNoIncomingEdge      Code = "NO_INCOMING_EDGE"
	CodeNoOutgoingEdge      Code = "NO_OUTGOING_EDGE"
	CodeMixedEdgeTypes      Code = "MIXED_EDGE_TYPES"
	CodeInvalidCondition    Code = "INVALID_CONDITION_EXPRESSION"
	CodeUnknownNodeRef      Code = "UNKNOWN_NODE_REFERENCE"
)

// Context carries finding-specific remediation payload. Only the fields
// relevant to the finding's code are populated.
type Context struct {
	// CyclePath is the ordered cycle, first node repeated last.
	CyclePath []string `json:"cycle_path,omitempty"`
	// HasConditionExit marks a controlled loop guarded by a conditional.
	HasConditionExit bool `json:"has_condition_exit,omitempty"`
	// ConditionNodeID is the guarding conditional node of a controlled loop.
	ConditionNodeID string `json:"condition_node_id,omitempty"`
	// MaxIterations is the guard's declared iteration bound.
	MaxIterations int `json:"max_iterations,omitempty"`

	// Field is the unresolved field name of a missing-field finding.
	Field string `json:"field,omitempty"`
	// AvailableFields is the sorted snapshot of fields available at the
	// offending node, for the UI's replacement picker.
	AvailableFields []string `json:"available_fields,omitempty"`
	// UpstreamNodeIDs are the direct predecessors of the offending node.
	UpstreamNodeIDs []string `json:"upstream_node_ids,omitempty"`

	// ConnectionSuggestions are candidate quick-connect targets for a
	// dangling node.
	ConnectionSuggestions []string `json:"connection_suggestions,omitempty"`

	// Condition is the rejected edge condition expression.
	Condition string `json:"condition,omitempty"`
	// EdgeID identifies the edge carrying a rejected condition.
	EdgeID string `json:"edge_id,omitempty"`
}

// Finding is a single validation outcome. Findings are value objects,
// created fresh each run and never mutated.
type Finding struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	NodeIDs  []string `json:"node_ids"`
	Context  *Context `json:"context,omitempty"`
}

// Result is the sole artifact returned to callers. Valid is true iff no
// error-severity findings were produced. Errors and Warnings preserve
// stage order and are never nil.
type Result struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// assemble splits findings by severity, preserving order within each
// list, and computes Valid.
func assemble(findings []Finding) Result {
	res := Result{
		Errors:   []Finding{},
		Warnings: []Finding{},
	}
	for _, f := range findings {
		if f.Severity == SeverityError {
			res.Errors = append(res.Errors, f)
		} else {
			res.Warnings = append(res.Warnings, f)
		}
	}
	res.Valid = len(res.Errors) == 0
	return res
}
