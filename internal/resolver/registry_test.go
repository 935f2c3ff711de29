package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/relay/internal/resolver"
	"github.com/kode4food/relay/pkg/api"
)

func identity(p api.Payload) (api.Payload, error) {
	return p, nil
}

func TestRegistryRegister(t *testing.T) {
	reg := resolver.NewRegistry()
	assert.NoError(t, reg.Register("echo", api.StepFunc(identity)))

	step, ok := reg.Get("echo")
	assert.True(t, ok)
	out, err := step.Invoke(42)
	assert.NoError(t, err)
	assert.Equal(t, 42, out)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistryErrors(t *testing.T) {
	reg := resolver.NewRegistry()

	err := reg.Register("", api.StepFunc(identity))
	assert.ErrorIs(t, err, resolver.ErrBuiltinName)

	err = reg.Register("nil", nil)
	assert.ErrorIs(t, err, resolver.ErrBuiltinStep)

	assert.NoError(t, reg.Register("echo", api.StepFunc(identity)))
	err = reg.Register("echo", api.StepFunc(identity))
	assert.ErrorIs(t, err, resolver.ErrBuiltinRegistered)
}

func TestRegistryNames(t *testing.T) {
	reg := resolver.NewRegistry()
	assert.Empty(t, reg.Names())

	assert.NoError(t, reg.Register("zeta", api.StepFunc(identity)))
	assert.NoError(t, reg.Register("alpha", api.StepFunc(identity)))
	assert.Equal(t, []string{"alpha", "zeta"}, reg.Names())
}
