package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/relay/internal/resolver"
	"github.com/kode4food/relay/pkg/api"
)

func loadAle(t *testing.T, src string) api.Step {
	t.Helper()
	step, err := resolver.NewAleLoader().Load("unit.ale", []byte(src))
	require.NoError(t, err)
	return step
}

func TestAleInvoke(t *testing.T) {
	step := loadAle(t, `(+ input 1)`)

	out, err := step.Invoke(41)
	assert.NoError(t, err)
	assert.Equal(t, 42, out)
}

func TestAleRecordResult(t *testing.T) {
	step := loadAle(t, `{:status "done" :received input}`)

	out, err := step.Invoke(map[string]any{"step": 2})
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{
		"status":   "done",
		"received": map[string]any{"step": 2},
	}, out)
}

func TestAleConversions(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		input    any
		expected any
	}{
		{name: "nil", body: "input", input: nil, expected: nil},
		{name: "zero", body: "input", input: 0, expected: 0},
		{name: "float", body: "input", input: 2.5, expected: 2.5},
		{name: "bool", body: "input", input: false, expected: false},
		{name: "string", body: "input", input: "", expected: ""},
		{
			name:     "vector",
			body:     "[input input]",
			input:    "a",
			expected: []any{"a", "a"},
		},
		{
			name:     "list",
			body:     "(list 1 2 3)",
			expected: []any{1, 2, 3},
		},
		{
			name:     "array_input",
			body:     "input",
			input:    []any{1, "b"},
			expected: []any{1, "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := loadAle(t, tt.body)
			out, err := step.Invoke(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestAleLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []error
	}{
		{
			name:     "syntax_error",
			src:      "{:result",
			expected: []error{api.ErrUnitLoad, resolver.ErrAleCompile},
		},
		{
			name:     "unknown_symbol",
			src:      "(+ amount 1)",
			expected: []error{api.ErrUnitLoad, resolver.ErrAleCompile},
		},
		{
			name:     "empty_body",
			src:      "  \n ",
			expected: []error{api.ErrContract, resolver.ErrAleEmptyBody},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.NewAleLoader().Load("unit.ale", []byte(tt.src))
			for _, e := range tt.expected {
				assert.ErrorIs(t, err, e)
			}
			assert.Contains(t, err.Error(), "unit.ale")
		})
	}
}

func TestAleExecutionError(t *testing.T) {
	step := loadAle(t, `(input 1)`)

	_, err := step.Invoke(5)
	assert.Error(t, err)
}

func TestAleTrailingComment(t *testing.T) {
	step := loadAle(t, "(* input 2) ; doubled")

	out, err := step.Invoke(4)
	assert.NoError(t, err)
	assert.Equal(t, 8, out)
}
