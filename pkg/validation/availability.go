package validation

import (
	"fmt"
	"sort"

	"github.com/avi3tal/flowguard/pkg/workflow"
)

// SeedFields are the state fields guaranteed present at workflow start.
var SeedFields = []string{"run_id", "request"}

// analyzeFieldAvailability walks nodes in topological order, accumulating
// the set of available fields, and reports every required field not yet
// available at the node that reads it. A node's own output_field joins
// the set only after the node is checked, so a node never satisfies its
// own requirements. The set only grows and the walk order is fixed, so
// repeated validation of the same graph yields identical findings.
func analyzeFieldAvailability(wf *workflow.WorkflowDefinition, g *NodeGraph, topo topology, reg workflow.Registry) []Finding {
	if !topo.valid {
		return nil
	}

	nodes := make(map[string]workflow.NodeDefinition, len(wf.Nodes))
	for _, n := range wf.Nodes {
		nodes[n.ID] = n
	}

	available := make(map[string]struct{}, len(SeedFields))
	for _, f := range SeedFields {
		available[f] = struct{}{}
	}

	var findings []Finding
	for _, id := range topo.order {
		node, ok := nodes[id]
		if !ok {
			continue
		}

		required := sortedFields(requiredFields(node, reg))
		for _, field := range required {
			if _, ok := available[field]; ok {
				continue
			}
			upstream := append([]string(nil), g.Incoming[id]...)
			sort.Strings(upstream)
			findings = append(findings, Finding{
				Code:     CodeMissingField,
				Severity: SeverityError,
				Message:  fmt.Sprintf("node %q references field %q, which no upstream node provides", id, field),
				NodeIDs:  []string{id},
				Context: &Context{
					Field:           field,
					AvailableFields: sortedFields(available),
					UpstreamNodeIDs: upstream,
				},
			})
		}

		if out, ok := node.OutputField(); ok {
			available[out] = struct{}{}
		}
	}
	return findings
}
