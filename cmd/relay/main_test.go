package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/relay/internal/assert/helpers"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	ws := helpers.NewWorkspace(t)
	ws.WriteNode("shout.lua", `
		function run(input)
			return string.upper(input.message)
		end
	`)
	ws.WriteWorkflow(`{"nodes": [
		{"file": "load_data"},
		{"file": "transform_data"},
		{"file": "shout.lua"}
	]}`)

	out, err := execute(t, "run",
		"--workflow", filepath.Join(ws.Workflows, "workflow.json"),
		"--nodes", ws.Nodes,
	)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result": "SEED: START -> TRANSFORMED"}`, out)
}

func TestRunCommandFailure(t *testing.T) {
	ws := helpers.NewWorkspace(t)
	ws.WriteWorkflow(`{"nodes": []}`)

	out, err := execute(t, "run",
		"--workflow", filepath.Join(ws.Workflows, "workflow.json"),
		"--nodes", ws.Nodes,
	)
	assert.ErrorIs(t, err, ErrRunFailed)
	assert.JSONEq(t,
		`{"error": "workflow must contain at least one node"}`, out,
	)
}

func TestRunCommandInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := execute(t, "run")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRunCommandRejectsArgs(t *testing.T) {
	_, err := execute(t, "run", "extra")
	assert.Error(t, err)
}

func TestBuiltinsCommand(t *testing.T) {
	out, err := execute(t, "builtins")
	require.NoError(t, err)
	assert.Equal(t, "load_data\nsave_results\ntransform_data\n", out)
}

func TestLocationFlags(t *testing.T) {
	ws := helpers.NewWorkspace(t)
	flags := &locationFlags{
		workflow: filepath.Join(ws.Workflows, "flow.yaml"),
		nodes:    "mem://",
	}
	r, err := newRelay(flags)
	require.NoError(t, err)
	assert.Equal(t, ws.Workflows, r.cfg.WorkflowBucket)
	assert.Equal(t, "flow.yaml", r.cfg.WorkflowKey)
	assert.Equal(t, "mem://", r.cfg.NodesBucket)
}
