package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kode4food/relay/internal/config"
	"github.com/kode4food/relay/pkg/api"
	"github.com/kode4food/relay/pkg/log"
)

type (
	// Engine runs the configured workflow. It holds no per-run state, so a
	// single Engine may serve concurrent runs
	Engine struct {
		config   *config.Config
		resolver StepResolver
	}

	// StepResolver materializes the step named by a locator
	StepResolver interface {
		Resolve(ctx context.Context, locator string) (api.Step, error)
	}

	// RunID identifies a single run in log output
	RunID string
)

// New creates an Engine that reads its workflow from the locations in cfg
// and resolves steps with res
func New(cfg *config.Config, res StepResolver) *Engine {
	return &Engine{
		config:   cfg,
		resolver: res,
	}
}

// Run loads the workflow definition and executes it. Failures of any kind
// are reported through the returned envelope; Run never panics
func (e *Engine) Run(ctx context.Context) (env *api.Envelope) {
	runID := RunID(uuid.New().String())
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", api.ErrRunPanic, r)
			env = e.failed(runID, start, err)
		}
	}()

	slog.Info("Run started",
		log.RunID(runID),
		log.Source(e.config.WorkflowBucket, e.config.WorkflowKey))

	def, err := e.LoadDefinition(ctx)
	if err != nil {
		return e.failed(runID, start, err)
	}

	slog.Debug("Definition loaded",
		log.RunID(runID),
		slog.Any("locators", def.Locators()))

	res, err := e.execute(ctx, runID, def)
	if err != nil {
		return e.failed(runID, start, err)
	}

	slog.Info("Run completed",
		log.RunID(runID),
		slog.Int("steps", len(def.Nodes)),
		slog.Duration("duration", time.Since(start)))
	return api.NewResult(res)
}

func (e *Engine) failed(runID RunID, start time.Time, err error) *api.Envelope {
	slog.Error("Run failed",
		log.RunID(runID),
		slog.Duration("duration", time.Since(start)),
		log.Error(err))
	return api.NewError(err)
}
