package resolver

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/kode4food/relay/pkg/api"
)

type (
	// GoLoader interprets Go unit files with yaegi. A unit is a package main
	// source file declaring a Run function that accepts at most the payload
	// and returns a value, optionally followed by an error
	GoLoader struct{}

	goStep struct {
		fn      reflect.Value
		takesIn bool
		in      reflect.Type
		hasErr  bool
	}
)

const goEntryPoint = "Run"

var (
	ErrGoInterpret    = errors.New("go interpret error")
	ErrGoEntry        = errors.New("go unit must declare func Run")
	ErrGoNotFunc      = errors.New("go entry point is not a function")
	ErrGoArity        = errors.New("go entry point takes at most one argument")
	ErrGoResults      = errors.New(
		"go entry point must return (value) or (value, error)",
	)
	ErrGoPayloadType  = errors.New("payload cannot be passed to go entry point")
	ErrGoCall         = errors.New("go call error")
	ErrGoNonErrResult = errors.New(
		"go entry point returned a non-error second value",
	)
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// NewGoLoader creates a Go unit loader
func NewGoLoader() *GoLoader {
	return &GoLoader{}
}

// Load interprets the unit source in a fresh interpreter and extracts Run
func (*GoLoader) Load(locator string, src []byte) (api.Step, error) {
	i := interp.New(interp.Options{})
	i.Use(stdlib.Symbols)

	_, err := catchPanic(ErrGoInterpret, func() (reflect.Value, error) {
		v, err := i.Eval(string(src))
		if err != nil {
			return v, fmt.Errorf("%w: %w", ErrGoInterpret, err)
		}
		return v, nil
	})
	if err != nil {
		return nil, loadError(locator, err)
	}

	fn, err := catchPanic(ErrGoEntry, func() (reflect.Value, error) {
		v, err := i.Eval(goEntryPoint)
		if err != nil {
			return v, fmt.Errorf("%w: %w", ErrGoEntry, err)
		}
		return v, nil
	})
	if err != nil {
		return nil, contractError(locator, err)
	}

	step, err := newGoStep(fn)
	if err != nil {
		return nil, contractError(locator, err)
	}
	return step, nil
}

func newGoStep(fn reflect.Value) (*goStep, error) {
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, ErrGoNotFunc
	}
	t := fn.Type()
	if t.NumIn() > 1 || t.IsVariadic() {
		return nil, fmt.Errorf("%w, got %s", ErrGoArity, t)
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if !t.Out(1).Implements(errorType) {
			return nil, fmt.Errorf("%w, got %s", ErrGoResults, t)
		}
	default:
		return nil, fmt.Errorf("%w, got %s", ErrGoResults, t)
	}

	step := &goStep{
		fn:     fn,
		hasErr: t.NumOut() == 2,
	}
	if t.NumIn() == 1 {
		step.takesIn = true
		step.in = t.In(0)
	}
	return step, nil
}

// Invoke calls Run, passing the payload when Run declares a parameter
func (s *goStep) Invoke(p api.Payload) (api.Payload, error) {
	args, err := s.args(p)
	if err != nil {
		return nil, err
	}

	out, err := catchPanic(ErrGoCall, func() ([]reflect.Value, error) {
		return s.fn.Call(args), nil
	})
	if err != nil {
		return nil, err
	}

	if s.hasErr && !out[1].IsNil() {
		e, ok := out[1].Interface().(error)
		if !ok {
			return nil, ErrGoNonErrResult
		}
		return nil, e
	}
	return out[0].Interface(), nil
}

func (s *goStep) args(p api.Payload) ([]reflect.Value, error) {
	if !s.takesIn {
		return nil, nil
	}
	if p == nil {
		return []reflect.Value{reflect.Zero(s.in)}, nil
	}
	v := reflect.ValueOf(p)
	if !v.Type().AssignableTo(s.in) {
		return nil, fmt.Errorf("%w: %T is not assignable to %s",
			ErrGoPayloadType, p, s.in)
	}
	return []reflect.Value{v}, nil
}
