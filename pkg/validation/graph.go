package validation

import (
	"fmt"

	"github.com/avi3tal/flowguard/pkg/workflow"
)

// NodeGraph holds the adjacency structures derived from a workflow's flat
// node/edge list. It is rebuilt fresh for every validation call and read
// but never mutated by the later passes. Every node id from the input is
// a key in all four maps, isolated nodes included.
type NodeGraph struct {
	Outgoing  map[string][]string
	Incoming  map[string][]string
	InDegree  map[string]int
	OutDegree map[string]int

	// EndSources are nodes with at least one edge to the EndTarget
	// sentinel. Such edges stay out of the adjacency maps but mark the
	// node as explicitly terminated for dangling detection.
	EndSources map[string]bool
}

// buildGraph indexes the workflow into a NodeGraph. Edges targeting the
// EndTarget sentinel terminate a path without constraining topology and
// are recorded nowhere. Edges referencing unknown node ids are reported
// as findings and excluded so the structural passes can still run.
func buildGraph(wf *workflow.WorkflowDefinition) (*NodeGraph, []Finding) {
	g := &NodeGraph{
		Outgoing:   make(map[string][]string, len(wf.Nodes)),
		Incoming:   make(map[string][]string, len(wf.Nodes)),
		InDegree:   make(map[string]int, len(wf.Nodes)),
		OutDegree:  make(map[string]int, len(wf.Nodes)),
		EndSources: make(map[string]bool),
	}
	for _, n := range wf.Nodes {
		g.Outgoing[n.ID] = nil
		g.Incoming[n.ID] = nil
		g.InDegree[n.ID] = 0
		g.OutDegree[n.ID] = 0
	}

	var findings []Finding
	for _, e := range wf.Edges {
		if _, ok := g.InDegree[e.Source]; !ok {
			findings = append(findings, unknownRefFinding(e, e.Source))
			continue
		}
		if e.Target == workflow.EndTarget {
			g.EndSources[e.Source] = true
			continue
		}
		if _, ok := g.InDegree[e.Target]; !ok {
			findings = append(findings, unknownRefFinding(e, e.Target))
			continue
		}
		g.Outgoing[e.Source] = append(g.Outgoing[e.Source], e.Target)
		g.Incoming[e.Target] = append(g.Incoming[e.Target], e.Source)
		g.OutDegree[e.Source]++
		g.InDegree[e.Target]++
	}
	return g, findings
}

func unknownRefFinding(e workflow.EdgeDefinition, missing string) Finding {
	return Finding{
		Code:     CodeUnknownNodeRef,
		Severity: SeverityError,
		Message:  fmt.Sprintf("edge %s references unknown node %q", e.ID, missing),
		NodeIDs:  []string{missing},
		Context:  &Context{EdgeID: e.ID},
	}
}
