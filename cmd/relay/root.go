package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/kode4food/relay"
	"github.com/kode4food/relay/internal/config"
	"github.com/kode4food/relay/internal/engine"
	"github.com/kode4food/relay/internal/nodes"
	"github.com/kode4food/relay/internal/resolver"
	"github.com/kode4food/relay/pkg/log"
)

type (
	relay struct {
		cfg    *config.Config
		engine *engine.Engine
	}

	locationFlags struct {
		workflow string
		nodes    string
	}
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrRunFailed     = errors.New("workflow run failed")
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   app.Name,
		Short: "Run linear pipelines of pluggable nodes",
		Long: "relay executes the nodes of a workflow definition in order,\n" +
			"feeding each node's result into the next.",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newBuiltinsCmd())
	return root
}

func (f *locationFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.workflow, "workflow", "",
		"local workflow definition file (default $WORKFLOW_BUCKET/$WORKFLOW_KEY)")
	fl.StringVar(&f.nodes, "nodes", "",
		"node unit directory or bucket URL (default $NODES_BUCKET)")
}

func (f *locationFlags) apply(cfg *config.Config) {
	if f.workflow != "" {
		cfg.WorkflowBucket = filepath.Dir(f.workflow)
		cfg.WorkflowKey = filepath.Base(f.workflow)
	}
	if f.nodes != "" {
		cfg.NodesBucket = f.nodes
	}
}

func newRelay(flags *locationFlags) (*relay, error) {
	cfg := config.NewDefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	res := resolver.New(cfg.NodesBucket, nodes.NewRegistry())
	return &relay{
		cfg:    cfg,
		engine: engine.New(cfg, res),
	}, nil
}

func (r *relay) setupLogging(w io.Writer) {
	level, _ := log.ParseLevel(r.cfg.LogLevel)

	env := os.Getenv("ENV")
	logger := log.NewWithWriter(w, app.Name, env, app.Version, level)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level)

	slog.Info("Configuration loaded",
		slog.String("log_level", r.cfg.LogLevel),
		log.Source(r.cfg.WorkflowBucket, r.cfg.WorkflowKey),
		slog.String("nodes_bucket", r.cfg.NodesBucket))
}
