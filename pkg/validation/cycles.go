package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avi3tal/flowguard/pkg/workflow"
)

// MaxCycleFindings bounds how many distinct cycle paths one validation
// reports. DFS cycle enumeration is worst-case exponential on densely
// connected graphs, so the detector records one cycle per back edge and
// stops once this many findings exist. The cap guarantees termination on
// adversarial input; the first finding already carries the root cause.
const MaxCycleFindings = 25

// detectCycles runs a depth-first search from every unvisited node and
// reports each discovered cycle as an ordered path, first node repeated
// last. Cycles are deduplicated by identical path only; cycles sharing
// nodes are reported independently.
func detectCycles(wf *workflow.WorkflowDefinition, g *NodeGraph) []Finding {
	nodes := make(map[string]workflow.NodeDefinition, len(wf.Nodes))
	ids := make([]string, 0, len(wf.Nodes))
	for _, n := range wf.Nodes {
		nodes[n.ID] = n
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)

	visited := make(map[string]bool, len(ids))
	onStack := make(map[string]bool, len(ids))
	seen := make(map[string]bool)
	var path []string
	var findings []Finding

	var dfs func(id string)
	dfs = func(id string) {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, next := range g.Outgoing[id] {
			if len(findings) >= MaxCycleFindings {
				break
			}
			if onStack[next] {
				cycle := closeCycle(path, next)
				key := strings.Join(cycle, "\x00")
				if !seen[key] {
					seen[key] = true
					findings = append(findings, cycleFinding(cycle, nodes))
				}
				continue
			}
			if !visited[next] {
				dfs(next)
			}
		}

		path = path[:len(path)-1]
		onStack[id] = false
	}

	for _, id := range ids {
		if len(findings) >= MaxCycleFindings {
			break
		}
		if !visited[id] {
			dfs(id)
		}
	}
	return findings
}

// closeCycle slices the current DFS path from the repeated node's first
// occurrence and re-closes it by appending that node. A 2-node cycle
// degenerates to [a, b, a] and a self-loop to [a, a]; the first and last
// entries always match.
func closeCycle(path []string, repeated string) []string {
	start := 0
	for i, id := range path {
		if id == repeated {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(path)-start+1)
	cycle = append(cycle, path[start:]...)
	cycle = append(cycle, repeated)
	return cycle
}

// cycleFinding classifies a cycle as a controlled loop (warning) when
// exactly one node on it is a conditional declaring an iteration bound,
// and as an unguarded circular dependency (error) otherwise.
func cycleFinding(cycle []string, nodes map[string]workflow.NodeDefinition) Finding {
	members := cycle[:len(cycle)-1]

	var conditionals []workflow.NodeDefinition
	for _, id := range members {
		if n, ok := nodes[id]; ok && n.Type == workflow.NodeTypeConditional {
			conditionals = append(conditionals, n)
		}
	}

	if len(conditionals) == 1 {
		if maxIter, ok := conditionals[0].MaxIterations(); ok {
			return Finding{
				Code:     CodeCircularDependency,
				Severity: SeverityWarning,
				Message: fmt.Sprintf("controlled loop gated by conditional %q (max %d iterations): %s",
					conditionals[0].ID, maxIter, strings.Join(cycle, " -> ")),
				NodeIDs: append([]string(nil), members...),
				Context: &Context{
					CyclePath:        append([]string(nil), cycle...),
					HasConditionExit: true,
					ConditionNodeID:  conditionals[0].ID,
					MaxIterations:    maxIter,
				},
			}
		}
	}

	return Finding{
		Code:     CodeCircularDependency,
		Severity: SeverityError,
		Message:  fmt.Sprintf("circular dependency detected: %s", strings.Join(cycle, " -> ")),
		NodeIDs:  append([]string(nil), members...),
		Context: &Context{
			CyclePath: append([]string(nil), cycle...),
		},
	}
}
