// Package validation implements the static-analysis pass that runs over
// a user-authored workflow graph before it may execute: cycle detection
// with path reconstruction, entry-point and reachability checks, a
// forward data-flow analysis of field availability, and edge-condition
// policy checks. All detectable problems surface as findings rather than
// errors; the validator never fails on malformed-but-parseable input.
package validation

import (
	"github.com/avi3tal/flowguard/pkg/workflow"
)

// Validator runs the full analysis. It holds no per-call state, so one
// Validator may be shared by any number of goroutines without locking;
// every call derives its own graph structures.
type Validator struct {
	registry workflow.Registry
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry overrides the node-type registry consulted by the field
// extractor.
func WithRegistry(reg workflow.Registry) Option {
	return func(v *Validator) {
		v.registry = reg
	}
}

// New creates a Validator. Without options it uses the default registry
// covering the built-in node types.
func New(opts ...Option) *Validator {
	v := &Validator{registry: workflow.DefaultRegistry()}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate runs every pass over the workflow and assembles the findings
// in stage order: unknown references, cycles, topology and dangling
// nodes, field availability, edge policy. The result is valid iff no
// error-severity findings were produced.
func (v *Validator) Validate(wf *workflow.WorkflowDefinition) Result {
	g, findings := buildGraph(wf)

	findings = append(findings, detectCycles(wf, g)...)

	topo, topoFindings := checkTopology(wf, g)
	findings = append(findings, topoFindings...)

	// Field analysis presumes acyclic structure; without a valid order it
	// is skipped and the cycle findings carry the root cause.
	findings = append(findings, analyzeFieldAvailability(wf, g, topo, v.registry)...)

	findings = append(findings, checkEdgePolicies(wf)...)

	return assemble(findings)
}

// DetectCycles runs only the cycle pass, for UI features that want
// partial results while the graph is being drawn.
func (v *Validator) DetectCycles(wf *workflow.WorkflowDefinition) []Finding {
	g, _ := buildGraph(wf)
	return detectCycles(wf, g)
}

// FindEntryNode resolves the workflow's entry point: the declared one if
// it names an existing node, otherwise the unique node with zero
// in-degree. The second return is false when neither exists.
func (v *Validator) FindEntryNode(wf *workflow.WorkflowDefinition) (string, bool) {
	g, _ := buildGraph(wf)

	if _, ok := g.InDegree[wf.EntryPoint]; ok && wf.EntryPoint != "" {
		return wf.EntryPoint, true
	}

	entry := ""
	for _, n := range wf.Nodes {
		if g.InDegree[n.ID] == 0 {
			if entry != "" {
				return "", false
			}
			entry = n.ID
		}
	}
	return entry, entry != ""
}
