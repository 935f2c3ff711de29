package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/kode4food/relay/pkg/api"
)

type (
	// ExprLoader compiles expression unit files. The whole file is a single
	// expression evaluated with the payload bound to input
	ExprLoader struct{}

	exprStep struct {
		program *vm.Program
	}
)

const exprInputName = "input"

var (
	ErrExprCompile   = errors.New("expr compile error")
	ErrExprRun       = errors.New("expr evaluation error")
	ErrExprEmptyBody = errors.New("expr unit body is empty")
)

// NewExprLoader creates an expression unit loader
func NewExprLoader() *ExprLoader {
	return &ExprLoader{}
}

// Load compiles the unit's expression
func (*ExprLoader) Load(locator string, src []byte) (api.Step, error) {
	body := strings.TrimSpace(string(src))
	if body == "" {
		return nil, contractError(locator, ErrExprEmptyBody)
	}

	program, err := catchPanic(ErrExprCompile, func() (*vm.Program, error) {
		p, err := expr.Compile(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExprCompile, err)
		}
		return p, nil
	})
	if err != nil {
		return nil, loadError(locator, err)
	}
	return &exprStep{program: program}, nil
}

// Invoke evaluates the expression against the payload
func (s *exprStep) Invoke(p api.Payload) (api.Payload, error) {
	env := map[string]any{exprInputName: p}
	return catchPanic(ErrExprRun, func() (api.Payload, error) {
		res, err := expr.Run(s.program, env)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExprRun, err)
		}
		return res, nil
	})
}
