package validation

import (
	"fmt"

	"github.com/avi3tal/flowguard/pkg/workflow"
)

// checkEdgePolicies validates conditional-edge expressions against the
// safety allowlist and flags nodes that mix conditioned and
// unconditioned outgoing edges, since the default branch is structurally
// ambiguous.
func checkEdgePolicies(wf *workflow.WorkflowDefinition) []Finding {
	var findings []Finding

	for _, e := range wf.Edges {
		if e.Condition == "" {
			continue
		}
		if err := checkConditionExpression(e.Condition); err != nil {
			findings = append(findings, Finding{
				Code:     CodeInvalidCondition,
				Severity: SeverityError,
				Message:  fmt.Sprintf("edge %s condition rejected: %v", e.ID, err),
				NodeIDs:  []string{e.Source},
				Context:  &Context{Condition: e.Condition, EdgeID: e.ID},
			})
		}
	}

	type edgeCounts struct {
		conditioned   int
		unconditioned int
	}
	counts := make(map[string]*edgeCounts)
	var sources []string
	for _, e := range wf.Edges {
		c, ok := counts[e.Source]
		if !ok {
			c = &edgeCounts{}
			counts[e.Source] = c
			sources = append(sources, e.Source)
		}
		if e.Condition != "" {
			c.conditioned++
		} else {
			c.unconditioned++
		}
	}
	for _, src := range sources {
		c := counts[src]
		if c.conditioned > 0 && c.unconditioned > 0 {
			findings = append(findings, Finding{
				Code:     CodeMixedEdgeTypes,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("node %q mixes conditional and unconditional outgoing edges", src),
				NodeIDs:  []string{src},
			})
		}
	}

	return findings
}

// checkConditionExpression scans a condition against the allowlist
// grammar: comparisons, and/or/not, dotted field access, string, number
// and boolean literals, and grouping parentheses. Anything resembling a
// function call, an identifier immediately followed by '(', is rejected
// outright; a user-authored graph must never carry an execution surface.
func checkConditionExpression(expr string) error {
	i, n := 0, len(expr)
	for i < n {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentPart(expr[j]) {
				j++
			}
			if j < n && expr[j] == '(' {
				return fmt.Errorf("function call %q is not allowed", expr[i:j])
			}
			i = j
		case c >= '0' && c <= '9':
			j := i + 1
			for j < n && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.') {
				j++
			}
			i = j
		case c == '-' && i+1 < n && expr[i+1] >= '0' && expr[i+1] <= '9':
			// Negative numeric literal. A '-' anywhere else stays rejected.
			j := i + 2
			for j < n && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.') {
				j++
			}
			i = j
		case c == '\'' || c == '"':
			j := i + 1
			for j < n && expr[j] != c {
				j++
			}
			if j >= n {
				return fmt.Errorf("unterminated string literal")
			}
			i = j + 1
		case c == '(' || c == ')':
			i++
		case c == '=' || c == '!':
			if i+1 < n && expr[i+1] == '=' {
				i += 2
			} else {
				return fmt.Errorf("unexpected token %q", string(c))
			}
		case c == '<' || c == '>':
			i++
			if i < n && expr[i] == '=' {
				i++
			}
		default:
			return fmt.Errorf("unexpected token %q", string(c))
		}
	}
	return nil
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '.' || c == '-'
}
