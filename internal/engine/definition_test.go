package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/relay/internal/assert/helpers"
	"github.com/kode4food/relay/internal/engine"
	"github.com/kode4food/relay/pkg/api"
)

func TestParseDefinition(t *testing.T) {
	def, err := engine.ParseDefinition("workflow.json", []byte(`{
		"nodes": [
			{"id": "1", "name": "Load", "file": "load_data", "position": {"x": 0}},
			{"id": "2", "file": "transform_data.go"},
			{"file": "save_results.ale"}
		],
		"edges": [{"source": "1", "target": "2"}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"load_data", "transform_data.go", "save_results.ale",
	}, def.Locators())
	assert.Equal(t, "Load", def.Nodes[0].Label())
	assert.Equal(t, "2", def.Nodes[1].Label())
	assert.Equal(t, "save_results.ale", def.Nodes[2].Label())
}

func TestParseDefinitionDuplicateKeys(t *testing.T) {
	def, err := engine.ParseDefinition("workflow.json", []byte(`{
		"nodes": [],
		"nodes": [{"file": "first", "file": "load_data"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"load_data"}, def.Locators())
	assert.JSONEq(t,
		`{"nodes": [{"file": "load_data"}]}`, string(def.Document),
	)
}

func TestParseDefinitionKeepsDocument(t *testing.T) {
	def, err := engine.ParseDefinition("workflow.json", []byte(`{
		"nodes": [{"id": "1", "file": "load_data", "position": {"x": 10.5}}],
		"edges": [{"source": "1", "target": "2"}]
	}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodes": [{"id": "1", "file": "load_data", "position": {"x": 10.5}}],
		"edges": [{"source": "1", "target": "2"}]
	}`, string(def.Document))
}

func TestParseDefinitionYAML(t *testing.T) {
	yamlDoc := `
nodes:
  - id: "1"
    file: load_data
  - file: transform_data
`
	jsonDoc := `{"nodes": [{"id": "1", "file": "load_data"}, {"file": "transform_data"}]}`

	fromYAML, err := engine.ParseDefinition("flow.yaml", []byte(yamlDoc))
	require.NoError(t, err)
	fromYML, err := engine.ParseDefinition("flow.YML", []byte(yamlDoc))
	require.NoError(t, err)
	fromJSON, err := engine.ParseDefinition("flow.json", []byte(jsonDoc))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, fromJSON, fromYML)
}

func TestParseDefinitionErrors(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		doc      string
		expected error
		contains string
	}{
		{
			name:     "not_json",
			key:      "workflow.json",
			doc:      `{"nodes": [`,
			expected: api.ErrMalformedDefinition,
		},
		{
			name:     "not_yaml",
			key:      "workflow.yaml",
			doc:      "nodes: [\n  - : :",
			expected: api.ErrMalformedDefinition,
		},
		{
			name:     "not_an_object",
			key:      "workflow.json",
			doc:      `[{"file": "load_data"}]`,
			expected: api.ErrMalformedDefinition,
		},
		{
			name:     "missing_nodes",
			key:      "workflow.json",
			doc:      `{}`,
			expected: api.ErrEmptyWorkflow,
		},
		{
			name:     "null_nodes",
			key:      "workflow.json",
			doc:      `{"nodes": null}`,
			expected: api.ErrEmptyWorkflow,
		},
		{
			name:     "nodes_not_array",
			key:      "workflow.json",
			doc:      `{"nodes": {"file": "load_data"}}`,
			expected: api.ErrEmptyWorkflow,
		},
		{
			name:     "empty_nodes",
			key:      "workflow.json",
			doc:      `{"nodes": []}`,
			expected: api.ErrEmptyWorkflow,
		},
		{
			name:     "empty_yaml_nodes",
			key:      "workflow.yaml",
			doc:      "nodes: []\n",
			expected: api.ErrEmptyWorkflow,
		},
		{
			name:     "entry_not_object",
			key:      "workflow.json",
			doc:      `{"nodes": ["load_data"]}`,
			expected: api.ErrInvalidStep,
			contains: "index 0",
		},
		{
			name:     "missing_file",
			key:      "workflow.json",
			doc:      `{"nodes": [{"file": "load_data"}, {"id": "2"}]}`,
			expected: api.ErrInvalidStep,
			contains: "index 1",
		},
		{
			name:     "file_not_string",
			key:      "workflow.json",
			doc:      `{"nodes": [{"file": 7}]}`,
			expected: api.ErrInvalidStep,
			contains: "index 0",
		},
		{
			name:     "duplicate_nodes_last_empty",
			key:      "workflow.json",
			doc:      `{"nodes": [{"file": "load_data"}], "nodes": []}`,
			expected: api.ErrEmptyWorkflow,
		},
		{
			name:     "duplicate_file_last_empty",
			key:      "workflow.json",
			doc:      `{"nodes": [{"file": "load_data", "file": ""}]}`,
			expected: api.ErrInvalidStep,
			contains: "index 0",
		},
		{
			name:     "duplicate_file_last_not_string",
			key:      "workflow.json",
			doc:      `{"nodes": [{"file": "a"}, {"file": "b", "file": 2}]}`,
			expected: api.ErrInvalidStep,
			contains: "index 1",
		},
		{
			name:     "file_empty",
			key:      "workflow.json",
			doc:      `{"nodes": [{"file": "a"}, {"file": "b"}, {"file": " "}]}`,
			expected: api.ErrInvalidStep,
			contains: "index 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ParseDefinition(tt.key, []byte(tt.doc))
			assert.ErrorIs(t, err, tt.expected)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoadDefinition(t *testing.T) {
	ws := helpers.NewWorkspace(t)
	ws.WriteWorkflow(`{"nodes": [{"file": "load_data"}]}`)

	def, err := ws.Engine().LoadDefinition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"load_data"}, def.Locators())
}

func TestLoadDefinitionMissing(t *testing.T) {
	ws := helpers.NewWorkspace(t)

	_, err := ws.Engine().LoadDefinition(context.Background())
	assert.ErrorIs(t, err, api.ErrSourceMissing)

	ws.Config.WorkflowBucket = ws.Workflows + "-absent"
	_, err = ws.Engine().LoadDefinition(context.Background())
	assert.ErrorIs(t, err, api.ErrSourceMissing)
}
