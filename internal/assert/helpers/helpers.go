package helpers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kode4food/relay/internal/config"
	"github.com/kode4food/relay/internal/engine"
	"github.com/kode4food/relay/internal/nodes"
	"github.com/kode4food/relay/internal/resolver"
)

// Workspace is a pair of temporary directories standing in for the workflow
// and nodes buckets of a test run
type Workspace struct {
	t         *testing.T
	Workflows string
	Nodes     string
	Config    *config.Config
}

// NewTestConfig creates a default configuration with debug logging enabled
func NewTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.LogLevel = "debug"
	return cfg
}

// NewWorkspace creates empty workflow and nodes buckets under t.TempDir and
// a configuration pointing at them
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	root := t.TempDir()
	ws := &Workspace{
		t:         t,
		Workflows: filepath.Join(root, "data"),
		Nodes:     filepath.Join(root, "nodes"),
	}
	require.NoError(t, os.MkdirAll(ws.Workflows, 0o755))
	require.NoError(t, os.MkdirAll(ws.Nodes, 0o755))

	ws.Config = NewTestConfig()
	ws.Config.WorkflowBucket = ws.Workflows
	ws.Config.NodesBucket = ws.Nodes
	return ws
}

// WriteWorkflow stores content under the configured workflow key
func (w *Workspace) WriteWorkflow(content string) {
	w.t.Helper()
	w.WriteWorkflowKey(w.Config.WorkflowKey, content)
}

// WriteWorkflowKey stores content under key and makes it the configured
// workflow key
func (w *Workspace) WriteWorkflowKey(key, content string) {
	w.t.Helper()
	writeFile(w.t, filepath.Join(w.Workflows, key), content)
	w.Config.WorkflowKey = key
}

// WriteNode stores a unit file in the nodes bucket
func (w *Workspace) WriteNode(locator, content string) {
	w.t.Helper()
	writeFile(w.t, filepath.Join(w.Nodes, filepath.FromSlash(locator)), content)
}

// Resolver returns a resolver over the nodes bucket with the builtin
// example steps registered
func (w *Workspace) Resolver() *resolver.Resolver {
	return resolver.New(w.Nodes, nodes.NewRegistry())
}

// Engine returns an engine over the workspace with the builtin example
// steps registered
func (w *Workspace) Engine() *engine.Engine {
	return engine.New(w.Config, w.Resolver())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
