package workflow

// EndTarget is the reserved sentinel edge target that terminates a path.
// Edges pointing at it carry no structural meaning for the graph passes.
const EndTarget = "__END__"

// NodeType tags a node with its behavior in the pipeline editor.
type NodeType string

const (
	NodeTypeDataSource   NodeType = "data_source"
	NodeTypeLLMAgent     NodeType = "llm_agent"
	NodeTypePeerDelegate NodeType = "peer_delegate"
	NodeTypeConditional  NodeType = "conditional"
	NodeTypeScript       NodeType = "script"
	NodeTypeOutput       NodeType = "output"
)

// Well-known config keys shared by all node types.
const (
	ConfigInputFields   = "input_fields"
	ConfigInputField    = "input_field"
	ConfigOutputField   = "output_field"
	ConfigMaxIterations = "max_iterations"
)

// NodeDefinition is a single node as authored on the canvas. The Config
// map is open; its meaning depends on Type and is interpreted through a
// Registry. Definitions are immutable during one validation pass.
type NodeDefinition struct {
	ID     string         `json:"id" yaml:"id"`
	Type   NodeType       `json:"type" yaml:"type"`
	Label  string         `json:"label,omitempty" yaml:"label,omitempty"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// EdgeDefinition is a directed connection between two nodes. Parallel
// edges between the same pair are allowed. Target may be EndTarget.
type EdgeDefinition struct {
	ID        string `json:"id" yaml:"id"`
	Source    string `json:"source" yaml:"source"`
	Target    string `json:"target" yaml:"target"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// WorkflowDefinition is the editor's save payload: a flat node/edge list
// plus the declared entry point.
type WorkflowDefinition struct {
	Name       string           `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes      []NodeDefinition `json:"nodes" yaml:"nodes"`
	Edges      []EdgeDefinition `json:"edges" yaml:"edges"`
	EntryPoint string           `json:"entry_point" yaml:"entry_point"`
}

// Node returns the node with the given id, if present.
func (w *WorkflowDefinition) Node(id string) (NodeDefinition, bool) {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeDefinition{}, false
}

// ConfigString returns a string-valued config entry.
func (n NodeDefinition) ConfigString(key string) (string, bool) {
	v, ok := n.Config[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ConfigStrings returns a list-valued config entry. JSON decoding yields
// []any, so both []string and []any with string elements are accepted.
func (n NodeDefinition) ConfigStrings(key string) []string {
	v, ok := n.Config[key]
	if !ok {
		return nil
	}
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ConfigInt returns an integer-valued config entry. JSON numbers decode
// as float64; whole-valued floats are accepted.
func (n NodeDefinition) ConfigInt(key string) (int, bool) {
	v, ok := n.Config[key]
	if !ok {
		return 0, false
	}
	switch vv := v.(type) {
	case int:
		return vv, true
	case int64:
		return int(vv), true
	case float64:
		if vv == float64(int(vv)) {
			return int(vv), true
		}
	}
	return 0, false
}

// OutputField returns the state field this node publishes, if declared.
func (n NodeDefinition) OutputField() (string, bool) {
	s, ok := n.ConfigString(ConfigOutputField)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// MaxIterations returns the node's declared iteration bound, if any.
// Only meaningful on conditional nodes guarding a loop.
func (n NodeDefinition) MaxIterations() (int, bool) {
	v, ok := n.ConfigInt(ConfigMaxIterations)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}
