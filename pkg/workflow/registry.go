package workflow

// Registry tells the field extractor which config keys on a given node
// type hold prompt/text templates. The validator itself stays agnostic of
// node-type semantics beyond this lookup.
type Registry interface {
	// TemplateKeys returns the config keys whose string values should be
	// scanned for field references on nodes of the given type.
	TemplateKeys(nodeType NodeType) []string
}

// StaticRegistry is a Registry backed by a fixed table with a fallback
// for unknown node types.
type StaticRegistry struct {
	keys     map[NodeType][]string
	fallback []string
}

// NewStaticRegistry builds a registry from an explicit table. The
// fallback keys apply to node types absent from the table.
func NewStaticRegistry(keys map[NodeType][]string, fallback []string) *StaticRegistry {
	return &StaticRegistry{keys: keys, fallback: fallback}
}

// TemplateKeys implements Registry.
func (r *StaticRegistry) TemplateKeys(nodeType NodeType) []string {
	if ks, ok := r.keys[nodeType]; ok {
		return ks
	}
	return r.fallback
}

// DefaultRegistry covers the built-in node types. Custom deployments
// register their own table through NewStaticRegistry.
func DefaultRegistry() *StaticRegistry {
	return NewStaticRegistry(map[NodeType][]string{
		NodeTypeDataSource:   {"query"},
		NodeTypeLLMAgent:     {"prompt", "system_prompt"},
		NodeTypePeerDelegate: {"task", "instructions"},
		NodeTypeConditional:  nil,
		NodeTypeScript:       nil,
		NodeTypeOutput:       {"template"},
	}, []string{"prompt", "template"})
}
