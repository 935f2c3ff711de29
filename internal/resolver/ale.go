package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kode4food/ale"
	"github.com/kode4food/ale/core/bootstrap"
	"github.com/kode4food/ale/data"
	"github.com/kode4food/ale/env"
	"github.com/kode4food/ale/eval"

	"github.com/kode4food/relay/pkg/api"
)

type (
	// AleLoader compiles Ale unit files. The file holds the body of the
	// entry point, which is wrapped in a single-argument lambda binding the
	// payload to input
	AleLoader struct {
		env *env.Environment
	}

	aleStep struct {
		proc data.Procedure
	}
)

const (
	aleInputName      = "input"
	aleLambdaTemplate = "(lambda (%s)\n%s\n)"
)

var (
	ErrAleNotProcedure = errors.New("not a procedure")
	ErrAleCompile      = errors.New("ale compile error")
	ErrAleCall         = errors.New("error calling procedure")
	ErrAleEmptyBody    = errors.New("ale unit body is empty")
)

// NewAleLoader creates an Ale unit loader with a bootstrapped environment.
// Each unit is compiled in its own anonymous namespace
func NewAleLoader() *AleLoader {
	e := env.NewEnvironment()
	bootstrap.Into(e)
	return &AleLoader{env: e}
}

// Load compiles the unit body into a procedure
func (l *AleLoader) Load(locator string, src []byte) (api.Step, error) {
	body := strings.TrimSpace(string(src))
	if body == "" {
		return nil, contractError(locator, ErrAleEmptyBody)
	}

	code := fmt.Sprintf(aleLambdaTemplate, aleInputName, body)
	res, err := catchPanic(ErrAleCompile, func() (ale.Value, error) {
		ns := l.env.GetAnonymous()
		res, err := eval.String(ns, data.String(code))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAleCompile, err)
		}
		return res, nil
	})
	if err != nil {
		return nil, loadError(locator, err)
	}

	proc, ok := res.(data.Procedure)
	if !ok {
		return nil, contractError(locator,
			fmt.Errorf("%w, got: %T", ErrAleNotProcedure, res),
		)
	}
	return &aleStep{proc: proc}, nil
}

// Invoke calls the compiled procedure with the payload
func (s *aleStep) Invoke(p api.Payload) (api.Payload, error) {
	res, err := catchPanic(ErrAleCall, func() (ale.Value, error) {
		return s.proc.Call(jsonToAle(p)), nil
	})
	if err != nil {
		return nil, err
	}
	return aleToJSON(res), nil
}

func jsonToAle(value any) ale.Value {
	switch v := value.(type) {
	case string:
		return data.String(v)
	case bool:
		return data.Bool(v)
	case int:
		return data.Integer(v)
	case int64:
		return data.Integer(v)
	case float64:
		return data.Float(v)
	case []any:
		return jsonArrayToAle(v)
	case map[string]any:
		return jsonMapToAle(v)
	case nil:
		return data.Null
	default:
		return data.String(fmt.Sprintf("%v", v))
	}
}

func jsonArrayToAle(arr []any) data.Vector {
	vec := make(data.Vector, len(arr))
	for i, item := range arr {
		vec[i] = jsonToAle(item)
	}
	return vec
}

func jsonMapToAle(m map[string]any) *data.Object {
	obj := data.NewObject()
	for k, val := range m {
		pair := data.NewCons(data.Keyword(k), jsonToAle(val))
		obj = obj.Put(pair).(*data.Object)
	}
	return obj
}

func aleToJSON(value ale.Value) any {
	if value == nil || value == data.Null {
		return nil
	}
	switch v := value.(type) {
	case data.String:
		return string(v)
	case data.Bool:
		return bool(v)
	case data.Keyword:
		return string(v)
	case data.Integer:
		return int(v)
	case data.Float:
		return float64(v)
	case data.Vector:
		return aleVectorToJSON(v)
	case *data.List:
		return aleListToJSON(v)
	case *data.Object:
		return aleObjectToJSON(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func aleVectorToJSON(v data.Vector) []any {
	result := make([]any, len(v))
	for i, item := range v {
		result[i] = aleToJSON(item)
	}
	return result
}

func aleListToJSON(list *data.List) []any {
	result := []any{}
	for l := list; !l.IsEmpty(); {
		head, tail, ok := l.Split()
		if !ok {
			break
		}
		result = append(result, aleToJSON(head))
		l = tail.(*data.List)
	}
	return result
}

func aleObjectToJSON(obj *data.Object) map[string]any {
	result := map[string]any{}
	for _, pair := range obj.Pairs() {
		keyStr := fmt.Sprintf("%v", aleToJSON(pair.Car()))
		result[keyStr] = aleToJSON(pair.Cdr())
	}
	return result
}
