package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avi3tal/flowguard/pkg/workflow"
)

//--------------------------//
// Test workflow builders   //
//--------------------------//

func testNode(id string, typ workflow.NodeType, config map[string]any) workflow.NodeDefinition {
	return workflow.NodeDefinition{ID: id, Type: typ, Config: config}
}

func testEdge(id, source, target string) workflow.EdgeDefinition {
	return workflow.EdgeDefinition{ID: id, Source: source, Target: target}
}

func condEdge(id, source, target, condition string) workflow.EdgeDefinition {
	return workflow.EdgeDefinition{ID: id, Source: source, Target: target, Condition: condition}
}

func findByCode(findings []Finding, code Code) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

//----------------//
// Full pipeline  //
//----------------//

func TestValidateCleanChain(t *testing.T) {
	t.Parallel()

	// A -> B -> C, A outputs x, B requires x and outputs y, C requires y.
	wf := &workflow.WorkflowDefinition{
		EntryPoint: "A",
		Nodes: []workflow.NodeDefinition{
			testNode("A", workflow.NodeTypeDataSource, map[string]any{"output_field": "x"}),
			testNode("B", workflow.NodeTypeLLMAgent, map[string]any{
				"input_fields": []any{"x"},
				"output_field": "y",
			}),
			testNode("C", workflow.NodeTypeOutput, map[string]any{"input_field": "y"}),
		},
		Edges: []workflow.EdgeDefinition{
			testEdge("e1", "A", "B"),
			testEdge("e2", "B", "C"),
			testEdge("e3", "C", workflow.EndTarget),
		},
	}

	result := New().Validate(wf)
	require.True(t, result.Valid)
	require.Empty(t, result.Errors)
	require.Empty(t, result.Warnings)
}

func TestValidateTwoNodeCycle(t *testing.T) {
	t.Parallel()

	wf := &workflow.WorkflowDefinition{
		EntryPoint: "A",
		Nodes: []workflow.NodeDefinition{
			testNode("A", workflow.NodeTypeScript, nil),
			testNode("B", workflow.NodeTypeScript, nil),
		},
		Edges: []workflow.EdgeDefinition{
			testEdge("e1", "A", "B"),
			testEdge("e2", "B", "A"),
		},
	}

	result := New().Validate(wf)
	require.False(t, result.Valid)

	cycles := findByCode(result.Errors, CodeCircularDependency)
	require.Len(t, cycles, 1)
	require.NotNil(t, cycles[0].Context)
	assert.Equal(t, []string{"A", "B", "A"}, cycles[0].Context.CyclePath)

	// The inbound edge into the declared entry also trips the entry check.
	require.Len(t, findByCode(result.Errors, CodeInvalidEntryPoint), 1)
}

func TestValidateMissingField(t *testing.T) {
	t.Parallel()

	wf := &workflow.WorkflowDefinition{
		EntryPoint: "A",
		Nodes: []workflow.NodeDefinition{
			testNode("A", workflow.NodeTypeDataSource, nil),
			testNode("B", workflow.NodeTypeLLMAgent, map[string]any{
				"input_fields": []any{"score"},
			}),
		},
		Edges: []workflow.EdgeDefinition{
			testEdge("e1", "A", "B"),
			testEdge("e2", "B", workflow.EndTarget),
		},
	}

	result := New().Validate(wf)
	require.False(t, result.Valid)

	missing := findByCode(result.Errors, CodeMissingField)
	require.Len(t, missing, 1)
	f := missing[0]
	assert.Equal(t, []string{"B"}, f.NodeIDs)
	require.NotNil(t, f.Context)
	assert.Equal(t, "score", f.Context.Field)
	assert.Equal(t, []string{"request", "run_id"}, f.Context.AvailableFields)
	assert.Equal(t, []string{"A"}, f.Context.UpstreamNodeIDs)
}

func TestValidateMixedEdgeTypes(t *testing.T) {
	t.Parallel()

	wf := &workflow.WorkflowDefinition{
		EntryPoint: "cond",
		Nodes: []workflow.NodeDefinition{
			testNode("cond", workflow.NodeTypeConditional, nil),
			testNode("x", workflow.NodeTypeScript, nil),
			testNode("y", workflow.NodeTypeScript, nil),
		},
		Edges: []workflow.EdgeDefinition{
			condEdge("e1", "cond", "x", "score >= 0.5"),
			testEdge("e2", "cond", "y"),
			testEdge("e3", "x", workflow.EndTarget),
			testEdge("e4", "y", workflow.EndTarget),
		},
	}

	result := New().Validate(wf)
	mixed := findByCode(result.Warnings, CodeMixedEdgeTypes)
	require.Len(t, mixed, 1)
	assert.Contains(t, mixed[0].NodeIDs, "cond")
}

func TestValidateIdempotent(t *testing.T) {
	t.Parallel()

	wf := &workflow.WorkflowDefinition{
		EntryPoint: "A",
		Nodes: []workflow.NodeDefinition{
			testNode("A", workflow.NodeTypeDataSource, nil),
			testNode("B", workflow.NodeTypeLLMAgent, map[string]any{
				"prompt": "summarize {request} with {score} and {{A.result}}",
			}),
			testNode("C", workflow.NodeTypeScript, nil),
			testNode("D", workflow.NodeTypeScript, nil),
		},
		Edges: []workflow.EdgeDefinition{
			testEdge("e1", "A", "B"),
			testEdge("e2", "B", "C"),
			testEdge("e3", "C", "B"),
		},
	}

	v := New()
	first := v.Validate(wf)
	second := v.Validate(wf)
	require.Equal(t, first, second)
	require.False(t, first.Valid)
}

func TestValidateDegradesOnUnknownReference(t *testing.T) {
	t.Parallel()

	wf := &workflow.WorkflowDefinition{
		EntryPoint: "A",
		Nodes: []workflow.NodeDefinition{
			testNode("A", workflow.NodeTypeDataSource, nil),
		},
		Edges: []workflow.EdgeDefinition{
			testEdge("e1", "A", "ghost"),
			testEdge("e2", "A", workflow.EndTarget),
		},
	}

	result := New().Validate(wf)
	require.False(t, result.Valid)

	unknown := findByCode(result.Errors, CodeUnknownNodeRef)
	require.Len(t, unknown, 1)
	assert.Equal(t, []string{"ghost"}, unknown[0].NodeIDs)
	require.NotNil(t, unknown[0].Context)
	assert.Equal(t, "e1", unknown[0].Context.EdgeID)
}

//----------------------//
// Narrow partial ops   //
//----------------------//

func TestDetectCyclesOnly(t *testing.T) {
	t.Parallel()

	wf := &workflow.WorkflowDefinition{
		Nodes: []workflow.NodeDefinition{
			testNode("A", workflow.NodeTypeScript, nil),
			testNode("B", workflow.NodeTypeScript, nil),
		},
		Edges: []workflow.EdgeDefinition{
			testEdge("e1", "A", "B"),
			testEdge("e2", "B", "A"),
		},
	}

	findings := New().DetectCycles(wf)
	require.Len(t, findings, 1)
	assert.Equal(t, CodeCircularDependency, findings[0].Code)
}

func TestFindEntryNode(t *testing.T) {
	t.Parallel()

	t.Run("declared_entry_wins", func(t *testing.T) {
		t.Parallel()
		wf := &workflow.WorkflowDefinition{
			EntryPoint: "B",
			Nodes: []workflow.NodeDefinition{
				testNode("A", workflow.NodeTypeScript, nil),
				testNode("B", workflow.NodeTypeScript, nil),
			},
		}
		entry, ok := New().FindEntryNode(wf)
		require.True(t, ok)
		assert.Equal(t, "B", entry)
	})

	t.Run("inferred_from_unique_root", func(t *testing.T) {
		t.Parallel()
		wf := &workflow.WorkflowDefinition{
			Nodes: []workflow.NodeDefinition{
				testNode("A", workflow.NodeTypeScript, nil),
				testNode("B", workflow.NodeTypeScript, nil),
			},
			Edges: []workflow.EdgeDefinition{testEdge("e1", "A", "B")},
		}
		entry, ok := New().FindEntryNode(wf)
		require.True(t, ok)
		assert.Equal(t, "A", entry)
	})

	t.Run("ambiguous_roots", func(t *testing.T) {
		t.Parallel()
		wf := &workflow.WorkflowDefinition{
			Nodes: []workflow.NodeDefinition{
				testNode("A", workflow.NodeTypeScript, nil),
				testNode("B", workflow.NodeTypeScript, nil),
			},
		}
		_, ok := New().FindEntryNode(wf)
		require.False(t, ok)
	})
}
