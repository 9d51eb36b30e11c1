package validation

import (
	"fmt"
	"sort"

	"github.com/avi3tal/flowguard/pkg/workflow"
)

// topology is the outcome of the ordering pass. When valid is false no
// topological order exists and order-dependent passes are skipped; cycle
// detection already reports the root cause.
type topology struct {
	order []string
	valid bool
}

// checkTopology validates the declared entry point, attempts a Kahn sort
// seeded with it, and flags dangling nodes. Dangling detection always
// runs, independent of whether an order exists.
func checkTopology(wf *workflow.WorkflowDefinition, g *NodeGraph) (topology, []Finding) {
	var findings []Finding

	entry := wf.EntryPoint
	entryExists := false
	if _, ok := g.InDegree[entry]; ok && entry != "" {
		entryExists = true
	}

	switch {
	case !entryExists:
		findings = append(findings, Finding{
			Code:     CodeInvalidEntryPoint,
			Severity: SeverityError,
			Message:  fmt.Sprintf("entry point %q does not name an existing node", entry),
			NodeIDs:  []string{entry},
		})
	case g.InDegree[entry] > 0:
		findings = append(findings, Finding{
			Code:     CodeInvalidEntryPoint,
			Severity: SeverityError,
			Message:  fmt.Sprintf("entry point %q has inbound edges; the entry must have in-degree zero", entry),
			NodeIDs:  []string{entry},
		})
	}

	// An entry with inbound edges cannot seed a trustworthy order: a
	// cycle running through it would drain completely and masquerade as
	// a valid order.
	topo := topology{}
	if entryExists && g.InDegree[entry] == 0 {
		topo = kahnSort(entry, g)
	}

	findings = append(findings, danglingFindings(entry, entryExists, g)...)
	return topo, findings
}

// kahnSort drains nodes starting from the entry point, releasing a node
// once all its inbound edges are consumed. Newly-ready nodes are admitted
// in sorted order so repeated validation walks nodes identically. The
// order is valid only when every node drains.
func kahnSort(entry string, g *NodeGraph) topology {
	indeg := make(map[string]int, len(g.InDegree))
	for id, d := range g.InDegree {
		indeg[id] = d
	}

	order := make([]string, 0, len(indeg))
	enqueued := map[string]bool{entry: true}
	queue := []string{entry}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var ready []string
		for _, next := range g.Outgoing[id] {
			indeg[next]--
			// A back edge into a drained node can push its count to zero
			// again; each node enters the queue at most once.
			if indeg[next] == 0 && !enqueued[next] {
				enqueued[next] = true
				ready = append(ready, next)
			}
		}
		sort.Strings(ready)
		queue = append(queue, ready...)
	}

	return topology{order: order, valid: len(order) == len(g.InDegree)}
}

// danglingFindings warns on nodes with no inbound edge (other than the
// entry point) and nodes with no outbound edge, where an edge to the end
// sentinel counts as a deliberate termination. Each finding carries
// non-empty connection suggestions: the complementary dangling set
// first, then the entry point or the end sentinel.
func danglingFindings(entry string, entryExists bool, g *NodeGraph) []Finding {
	ids := make([]string, 0, len(g.InDegree))
	for id := range g.InDegree {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// An edge to the end sentinel terminates a path on purpose; only
	// nodes with no outgoing edge of any kind are dangling.
	var noIncoming, noOutgoing []string
	for _, id := range ids {
		if g.InDegree[id] == 0 && id != entry {
			noIncoming = append(noIncoming, id)
		}
		if g.OutDegree[id] == 0 && !g.EndSources[id] {
			noOutgoing = append(noOutgoing, id)
		}
	}

	var findings []Finding
	for _, id := range ids {
		if g.InDegree[id] == 0 && id != entry {
			suggestions := exclude(noOutgoing, id)
			if len(suggestions) == 0 && entryExists && entry != id {
				suggestions = []string{entry}
			}
			if len(suggestions) == 0 {
				suggestions = []string{workflow.EndTarget}
			}
			findings = append(findings, Finding{
				Code:     CodeNoIncomingEdge,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("node %q has no incoming edge and is not the entry point", id),
				NodeIDs:  []string{id},
				Context:  &Context{ConnectionSuggestions: suggestions},
			})
		}
		if g.OutDegree[id] == 0 && !g.EndSources[id] {
			suggestions := exclude(noIncoming, id)
			if len(suggestions) == 0 {
				suggestions = []string{workflow.EndTarget}
			}
			findings = append(findings, Finding{
				Code:     CodeNoOutgoingEdge,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("node %q has no outgoing edge", id),
				NodeIDs:  []string{id},
				Context:  &Context{ConnectionSuggestions: suggestions},
			})
		}
	}
	return findings
}

func exclude(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
