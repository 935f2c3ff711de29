package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kode4food/relay/pkg/api"
	"github.com/kode4food/relay/pkg/log"
)

// Execute runs every step of def in declared order. The first step receives
// a nil payload and each step's return value, whatever its shape, becomes
// the next step's input. Execution stops at the first failure
func (e *Engine) Execute(
	ctx context.Context, def *api.Definition,
) (api.Payload, error) {
	return e.execute(ctx, RunID(uuid.New().String()), def)
}

func (e *Engine) execute(
	ctx context.Context, runID RunID, def *api.Definition,
) (api.Payload, error) {
	var payload api.Payload
	for i, node := range def.Nodes {
		locator := node.File
		step, err := e.resolver.Resolve(ctx, locator)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w",
				api.ErrStepResolution, locator, err)
		}

		start := time.Now()
		res, err := invoke(step, payload)
		if err != nil {
			slog.Warn("Step failed",
				log.RunID(runID),
				log.Index(i),
				log.Locator(locator),
				log.Error(err))
			return nil, fmt.Errorf("%w: %s: %w",
				api.ErrStepExecution, locator, err)
		}

		slog.Debug("Step completed",
			log.RunID(runID),
			log.Index(i),
			log.Locator(locator),
			slog.String("name", node.Label()),
			slog.Duration("duration", time.Since(start)))
		payload = res
	}
	return payload, nil
}

func invoke(step api.Step, p api.Payload) (res api.Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return step.Invoke(p)
}
