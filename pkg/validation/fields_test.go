package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avi3tal/flowguard/pkg/workflow"
)

func extractAll(s string) []string {
	set := make(map[string]struct{})
	extractTemplateFields(s, set)
	return sortedFields(set)
}

func TestExtractTemplateFields(t *testing.T) {
	t.Parallel()

	t.Run("bare_reference_in_mixed_text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"request"}, extractAll("根据 {request} 制定计划"))
	})

	t.Run("qualified_reference", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"node-1.result"}, extractAll("{{node-1.result}}"))
	})

	t.Run("double_brace_not_duplicated_by_single_scan", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"plan"}, extractAll("use {{plan}} and {plan}"))
	})

	t.Run("multiple_references", func(t *testing.T) {
		t.Parallel()
		got := extractAll("compare {left} with {right} given {{cfg.threshold}}")
		assert.Equal(t, []string{"cfg.threshold", "left", "right"}, got)
	})

	t.Run("no_references", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, extractAll("plain text with no braces"))
	})

	t.Run("malformed_braces_ignored", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, extractAll("open { brace and {bad name}"))
	})
}

func TestRequiredFields(t *testing.T) {
	t.Parallel()

	reg := workflow.DefaultRegistry()

	t.Run("explicit_input_fields", func(t *testing.T) {
		t.Parallel()
		n := testNode("n", workflow.NodeTypeScript, map[string]any{
			"input_fields": []any{"a", "b"},
		})
		assert.Equal(t, []string{"a", "b"}, sortedFields(requiredFields(n, reg)))
	})

	t.Run("literal_input_field", func(t *testing.T) {
		t.Parallel()
		n := testNode("n", workflow.NodeTypeScript, map[string]any{
			"input_field": "score",
		})
		assert.Equal(t, []string{"score"}, sortedFields(requiredFields(n, reg)))
	})

	t.Run("templated_input_field", func(t *testing.T) {
		t.Parallel()
		n := testNode("n", workflow.NodeTypeScript, map[string]any{
			"input_field": "{analysis.summary}",
		})
		assert.Equal(t, []string{"analysis.summary"}, sortedFields(requiredFields(n, reg)))
	})

	t.Run("registry_template_keys_by_type", func(t *testing.T) {
		t.Parallel()
		n := testNode("n", workflow.NodeTypeLLMAgent, map[string]any{
			"prompt":        "answer using {context}",
			"system_prompt": "you are {persona}",
			"task":          "{ignored} because llm_agent has no task key",
		})
		assert.Equal(t, []string{"context", "persona"}, sortedFields(requiredFields(n, reg)))
	})

	t.Run("fallback_keys_for_unknown_type", func(t *testing.T) {
		t.Parallel()
		n := testNode("n", workflow.NodeType("custom"), map[string]any{
			"prompt": "use {request}",
		})
		assert.Equal(t, []string{"request"}, sortedFields(requiredFields(n, reg)))
	})

	t.Run("all_sources_merged", func(t *testing.T) {
		t.Parallel()
		n := testNode("n", workflow.NodeTypeLLMAgent, map[string]any{
			"input_fields": []any{"a"},
			"input_field":  "b",
			"prompt":       "combine {a} and {c}",
		})
		got := sortedFields(requiredFields(n, reg))
		require.Equal(t, []string{"a", "b", "c"}, got)
	})
}
