package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kode4food/relay/pkg/log"
)

type (
	// Config holds configuration settings for the pipeline runner
	Config struct {
		// API Server
		APIHost  string
		APIPort  int
		LogLevel string

		// Workflow definition and node unit locations. Buckets are either
		// local directory paths or gocloud.dev blob URLs (file://, s3://,
		// gs://, azblob://, mem://)
		WorkflowBucket string
		WorkflowKey    string
		NodesBucket    string

		ShutdownTimeout time.Duration
	}
)

const (
	DefaultShutdownTimeout = 10 * time.Second

	DefaultAPIPort = 8080
	DefaultAPIHost = "0.0.0.0"
	MaxTCPPort     = 65535

	DefaultWorkflowBucket = "data"
	DefaultWorkflowKey    = "workflow.json"
	DefaultNodesBucket    = "nodes"
	DefaultLogLevel       = "info"

	MaxShutdownTimeout = 10 * time.Minute
)

var (
	ErrInvalidAPIPort         = errors.New("invalid API port")
	ErrInvalidLogLevel        = errors.New("invalid log level")
	ErrMissingWorkflowBucket  = errors.New("workflow bucket is required")
	ErrMissingWorkflowKey     = errors.New("workflow key is required")
	ErrMissingNodesBucket     = errors.New("nodes bucket is required")
	ErrInvalidShutdownTimeout = errors.New(
		"shutdown timeout must be positive",
	)
)

// NewDefaultConfig creates a configuration with sensible defaults: the
// workflow is read from data/workflow.json and node units from nodes/,
// both relative to the working directory
func NewDefaultConfig() *Config {
	return &Config{
		APIPort:         DefaultAPIPort,
		APIHost:         DefaultAPIHost,
		LogLevel:        DefaultLogLevel,
		WorkflowBucket:  DefaultWorkflowBucket,
		WorkflowKey:     DefaultWorkflowKey,
		NodesBucket:     DefaultNodesBucket,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// LoadFromEnv populates configuration values from environment variables.
// Returns an error if any env var cannot be parsed
func (c *Config) LoadFromEnv() error {
	loadEnvString("API_HOST", &c.APIHost)
	loadEnvString("LOG_LEVEL", &c.LogLevel)
	loadEnvString("WORKFLOW_BUCKET", &c.WorkflowBucket)
	loadEnvString("WORKFLOW_KEY", &c.WorkflowKey)
	loadEnvString("NODES_BUCKET", &c.NodesBucket)

	if err := loadEnvInt("API_PORT", &c.APIPort, 0, MaxTCPPort); err != nil {
		return err
	}

	if s := os.Getenv("SHUTDOWN_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %q", s)
		}
		if d <= 0 || d > MaxShutdownTimeout {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %s out of range", d)
		}
		c.ShutdownTimeout = d
	}

	return nil
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}

	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidLogLevel, c.LogLevel)
	}

	if strings.TrimSpace(c.WorkflowBucket) == "" {
		return ErrMissingWorkflowBucket
	}

	if strings.TrimSpace(c.WorkflowKey) == "" {
		return ErrMissingWorkflowKey
	}

	if strings.TrimSpace(c.NodesBucket) == "" {
		return ErrMissingNodesBucket
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	return nil
}

func loadEnvString(key string, dst *string) {
	if s := os.Getenv(key); s != "" {
		*dst = s
	}
}

// loadEnvInt reads key from the environment, parses it as an integer, and
// sets *dst if the value is in the range (min, max). Returns an error if
// the value cannot be parsed or falls outside the valid range.
func loadEnvInt[T ~int | ~int64](key string, dst *T, min, max T) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	tv := T(v)
	if tv <= min || tv > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]",
			key, tv, min+1, max)
	}
	*dst = tv
	return nil
}
