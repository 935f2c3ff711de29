package assert

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/relay/internal/config"
	"github.com/kode4food/relay/pkg/api"
)

// Wrapper wraps testify assertions with relay-specific helpers
type Wrapper struct {
	*testing.T
	*assert.Assertions
	Require *require.Assertions
}

// New creates a new test assertion wrapper with both assert and require from
// testify plus relay-specific helpers
func New(t *testing.T) *Wrapper {
	return &Wrapper{
		T:          t,
		Assertions: assert.New(t),
		Require:    require.New(t),
	}
}

// ConfigValid asserts that a configuration is valid
func (w *Wrapper) ConfigValid(cfg *config.Config) {
	w.Helper()
	w.NoError(cfg.Validate())
	w.True(cfg.APIPort > 0 && cfg.APIPort <= config.MaxTCPPort)
	w.True(cfg.ShutdownTimeout > 0)
	w.NotEmpty(cfg.WorkflowBucket)
	w.NotEmpty(cfg.WorkflowKey)
	w.NotEmpty(cfg.NodesBucket)
}

// ConfigInvalid asserts that a configuration is invalid
func (w *Wrapper) ConfigInvalid(cfg *config.Config, contains string) {
	w.Helper()
	err := cfg.Validate()
	w.Error(err)
	if err != nil && contains != "" {
		w.Contains(err.Error(), contains)
	}
}

// EnvelopeResult asserts that env is a success envelope whose payload
// matches expected. Payloads are compared in their JSON form so numeric
// representations produced by different unit kinds compare equal
func (w *Wrapper) EnvelopeResult(env *api.Envelope, expected any) {
	w.Helper()
	w.Require.NotNil(env)
	res, ok := env.Result()
	if msg, failed := env.ErrorMessage(); failed {
		w.Fail("expected result envelope", "got error: %s", msg)
		return
	}
	w.True(ok)
	if diff := cmp.Diff(normalize(w, expected), normalize(w, res)); diff != "" {
		w.Fail("envelope result mismatch", "(-want +got):\n%s", diff)
	}
}

// EnvelopeError asserts that env is an error envelope whose message carries
// the message of each expected sentinel
func (w *Wrapper) EnvelopeError(env *api.Envelope, expected ...error) string {
	w.Helper()
	w.Require.NotNil(env)
	msg, ok := env.ErrorMessage()
	if !ok {
		res, _ := env.Result()
		w.Fail("expected error envelope", "got result: %v", res)
		return ""
	}
	for _, err := range expected {
		w.Contains(msg, err.Error())
	}
	return msg
}

// ErrorChain asserts that err wraps every one of the expected sentinels
func (w *Wrapper) ErrorChain(err error, expected ...error) {
	w.Helper()
	w.Require.Error(err)
	for _, e := range expected {
		w.True(errors.Is(err, e), "expected %v in chain: %v", e, err)
	}
}

func normalize(w *Wrapper, v any) any {
	w.Helper()
	data, err := json.Marshal(v)
	w.Require.NoError(err)
	var res any
	w.Require.NoError(json.Unmarshal(data, &res))
	return res
}
