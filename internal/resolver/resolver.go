package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/kode4food/relay/internal/source"
	"github.com/kode4food/relay/pkg/api"
	"github.com/kode4food/relay/pkg/log"
)

type (
	// Resolver turns step locators into invocable steps. Builtin steps are
	// matched first; anything else is read from the nodes bucket and handed
	// to the Loader registered for its file extension
	Resolver struct {
		nodes    string
		builtins *Registry
		loaders  map[string]Loader
	}

	// Loader materializes a step from the raw contents of a unit file
	Loader interface {
		Load(locator string, src []byte) (api.Step, error)
	}
)

const (
	ExtLua  = ".lua"
	ExtGo   = ".go"
	ExtAle  = ".ale"
	ExtExpr = ".expr"
)

var (
	ErrEmptyLocator     = errors.New("locator is empty")
	ErrOutsideNamespace = errors.New("locator escapes the unit namespace")
	ErrUnsupportedKind  = errors.New("unsupported unit kind")
)

// New creates a Resolver reading units from nodesBucket (a local directory
// or bucket URL) with the Lua, Go, Ale, and expr loaders installed. builtins
// may be nil
func New(nodesBucket string, builtins *Registry) *Resolver {
	r := &Resolver{
		nodes:    nodesBucket,
		builtins: builtins,
		loaders:  map[string]Loader{},
	}
	r.Register(ExtLua, NewLuaLoader())
	r.Register(ExtGo, NewGoLoader())
	r.Register(ExtAle, NewAleLoader())
	r.Register(ExtExpr, NewExprLoader())
	return r
}

// Register installs or replaces the loader for a file extension
func (r *Resolver) Register(ext string, l Loader) {
	r.loaders[strings.ToLower(ext)] = l
}

// Resolve locates, loads, and returns the step named by locator. Failures
// wrap api.ErrUnitNotFound, api.ErrUnitLoad, or api.ErrContract
func (r *Resolver) Resolve(
	ctx context.Context, locator string,
) (api.Step, error) {
	if r.builtins != nil {
		if step, ok := r.builtins.Get(locator); ok {
			return step, nil
		}
	}

	key, err := unitKey(locator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrUnitNotFound, err)
	}

	b, err := source.Open(ctx, r.nodes)
	if err != nil {
		return nil, loadError(locator, err)
	}
	defer func() { _ = b.Close() }()

	slog.Debug("Resolving unit",
		log.Locator(locator),
		log.Source(b.URL(), key))

	ok, err := b.Exists(ctx, key)
	if err != nil {
		return nil, loadError(locator, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", api.ErrUnitNotFound, locator)
	}

	src, err := b.ReadAll(ctx, key)
	if errors.Is(err, source.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", api.ErrUnitNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrUnitLoad, err)
	}

	ext := strings.ToLower(path.Ext(key))
	loader, ok := r.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w %q",
			api.ErrUnitLoad, locator, ErrUnsupportedKind, ext)
	}
	return loader.Load(locator, src)
}

func unitKey(locator string) (string, error) {
	if strings.TrimSpace(locator) == "" {
		return "", ErrEmptyLocator
	}
	slashed := strings.ReplaceAll(locator, "\\", "/")
	if path.IsAbs(slashed) {
		return "", fmt.Errorf("%w: %s", ErrOutsideNamespace, locator)
	}
	key := path.Clean(slashed)
	if key == ".." || strings.HasPrefix(key, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideNamespace, locator)
	}
	return key, nil
}

func loadError(locator string, err error) error {
	return fmt.Errorf("%w: %s: %w", api.ErrUnitLoad, locator, err)
}

func contractError(locator string, err error) error {
	return fmt.Errorf("%w: %s: %w", api.ErrContract, locator, err)
}

func catchPanic[T any](baseErr error, fn func() (T, error)) (res T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = fmt.Errorf("%w: %w", baseErr, e)
			return
		}
		err = fmt.Errorf("%w: %v", baseErr, r)
	}()
	return fn()
}
