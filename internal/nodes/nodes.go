// Package nodes provides the builtin example steps of the sample pipeline
package nodes

import (
	"errors"
	"fmt"

	"github.com/kode4food/relay/internal/resolver"
	"github.com/kode4food/relay/pkg/api"
)

const (
	LoadData      = "load_data"
	TransformData = "transform_data"
	SaveResults   = "save_results"
)

const (
	seedMessage      = "seed: start"
	transformSuffix  = " -> transformed"
	transformedLabel = "transformed"
	completeStatus   = "workflow complete"
)

var ErrUnexpectedPayload = errors.New("payload is not a record")

// Register installs the builtin example steps into reg
func Register(reg *resolver.Registry) error {
	for name, fn := range builtins() {
		if err := reg.Register(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the builtin example steps
func NewRegistry() *resolver.Registry {
	reg := resolver.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	return reg
}

func builtins() map[string]api.StepFunc {
	return map[string]api.StepFunc{
		LoadData:      Load,
		TransformData: Transform,
		SaveResults:   Save,
	}
}

// Load ignores its input and produces the seed payload
func Load(api.Payload) (api.Payload, error) {
	return map[string]any{
		"message": seedMessage,
		"step":    1,
	}, nil
}

// Transform appends a marker to the message and increments the step
// counter. A nil input is treated as an empty record, a missing message
// becomes "transformed", and a missing counter counts as zero
func Transform(p api.Payload) (api.Payload, error) {
	in, err := asRecord(p)
	if err != nil {
		return nil, err
	}

	res := make(map[string]any, len(in)+2)
	for k, v := range in {
		res[k] = v
	}

	if msg, _ := in["message"].(string); msg != "" {
		res["message"] = msg + transformSuffix
	} else {
		res["message"] = transformedLabel
	}

	step, err := increment(in["step"])
	if err != nil {
		return nil, err
	}
	res["step"] = step
	return res, nil
}

// Save wraps its input in a completion summary
func Save(p api.Payload) (api.Payload, error) {
	return map[string]any{
		"status":   completeStatus,
		"received": p,
	}, nil
}

func asRecord(p api.Payload) (map[string]any, error) {
	switch v := p.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedPayload, p)
	}
}

func increment(v any) (any, error) {
	switch n := v.(type) {
	case nil:
		return 1, nil
	case int:
		return n + 1, nil
	case int64:
		return n + 1, nil
	case float64:
		return n + 1, nil
	default:
		return nil, fmt.Errorf("%w: step counter is %T", ErrUnexpectedPayload, v)
	}
}
