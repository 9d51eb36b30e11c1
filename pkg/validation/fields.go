package validation

import (
	"regexp"
	"sort"

	"github.com/avi3tal/flowguard/pkg/workflow"
)

// Template reference syntaxes. Double braces carry qualified, dotted
// cross-node references; single braces carry bare state-field names.
// Double braces are scanned first; the single-brace pass never re-adds a
// name the double-brace pass already captured.
var (
	doubleBracePattern = regexp.MustCompile(`\{\{([A-Za-z0-9_.-]+)\}\}`)
	singleBracePattern = regexp.MustCompile(`\{([A-Za-z0-9_.-]+)\}`)
)

// extractTemplateFields scans a template string for field references and
// adds them to the set.
func extractTemplateFields(s string, into map[string]struct{}) {
	for _, m := range doubleBracePattern.FindAllStringSubmatch(s, -1) {
		into[m[1]] = struct{}{}
	}
	for _, m := range singleBracePattern.FindAllStringSubmatch(s, -1) {
		into[m[1]] = struct{}{}
	}
}

// looksLikeTemplate reports whether the string contains either reference
// syntax.
func looksLikeTemplate(s string) bool {
	return singleBracePattern.MatchString(s)
}

// requiredFields computes the set of state-field names a node reads,
// merging the explicit input_fields list, the single input_field setting,
// and every config value the registry marks as a template for the node's
// type.
func requiredFields(node workflow.NodeDefinition, reg workflow.Registry) map[string]struct{} {
	fields := make(map[string]struct{})

	for _, f := range node.ConfigStrings(workflow.ConfigInputFields) {
		if f != "" {
			fields[f] = struct{}{}
		}
	}

	if s, ok := node.ConfigString(workflow.ConfigInputField); ok && s != "" {
		if looksLikeTemplate(s) {
			extractTemplateFields(s, fields)
		} else {
			fields[s] = struct{}{}
		}
	}

	for _, key := range reg.TemplateKeys(node.Type) {
		if s, ok := node.ConfigString(key); ok {
			extractTemplateFields(s, fields)
		}
	}

	return fields
}

func sortedFields(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
