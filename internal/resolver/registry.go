package resolver

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/kode4food/relay/pkg/api"
)

// Registry maintains the builtin steps that are linked into the binary and
// addressed by name rather than by unit file
type Registry struct {
	mu    sync.RWMutex
	steps map[string]api.Step
}

var (
	ErrBuiltinName       = errors.New("builtin name is required")
	ErrBuiltinStep       = errors.New("builtin step is required")
	ErrBuiltinRegistered = errors.New("builtin already registered")
)

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{steps: map[string]api.Step{}}
}

// Register installs a builtin step. Returns an error if the name is taken
func (r *Registry) Register(name string, step api.Step) error {
	if name == "" {
		return ErrBuiltinName
	}
	if step == nil {
		return fmt.Errorf("%w: %s", ErrBuiltinStep, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.steps[name]; exists {
		return fmt.Errorf("%w: %s", ErrBuiltinRegistered, name)
	}
	r.steps[name] = step
	return nil
}

// Get returns the builtin step registered under name
func (r *Registry) Get(name string) (api.Step, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	step, ok := r.steps[name]
	return step, ok
}

// Names returns a sorted list of registered builtin names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.steps))
	for name := range r.steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
