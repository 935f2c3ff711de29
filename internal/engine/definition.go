package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/kode4food/relay/internal/source"
	"github.com/kode4food/relay/pkg/api"
)

const (
	nodesKey = "nodes"
	fileKey  = "file"
)

// LoadDefinition reads and parses the configured workflow definition
func (e *Engine) LoadDefinition(ctx context.Context) (*api.Definition, error) {
	bucket, key := e.config.WorkflowBucket, e.config.WorkflowKey
	data, err := source.Read(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrSourceMissing, err)
	}
	return ParseDefinition(key, data)
}

// ParseDefinition decodes a workflow document, validates its shape, and
// returns it. Keys ending in .yaml or .yml are decoded as YAML; everything
// else is treated as JSON. Validation runs against the decoded document, so
// a key that appears more than once is judged by the value that is kept
func ParseDefinition(key string, data []byte) (*api.Definition, error) {
	doc, err := normalize(key, data)
	if err != nil {
		return nil, err
	}
	if err := checkShape(doc); err != nil {
		return nil, err
	}

	var def api.Definition
	if err := json.Unmarshal(doc, &def); err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrMalformedDefinition, err)
	}
	def.Document = doc
	return &def, nil
}

// normalize decodes data and re-encodes it as canonical JSON with every
// object key appearing once
func normalize(key string, data []byte) ([]byte, error) {
	var raw any
	switch strings.ToLower(path.Ext(key)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %w", api.ErrMalformedDefinition, err)
		}
	default:
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("%w: %s",
				api.ErrMalformedDefinition, key)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %w", api.ErrMalformedDefinition, err)
		}
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrMalformedDefinition, err)
	}
	return doc, nil
}

func checkShape(doc []byte) error {
	root := gjson.ParseBytes(doc)
	if !root.IsObject() {
		return fmt.Errorf("%w: document is not an object",
			api.ErrMalformedDefinition)
	}

	nodes := root.Get(nodesKey)
	if !nodes.Exists() || !nodes.IsArray() {
		return api.ErrEmptyWorkflow
	}
	entries := nodes.Array()
	if len(entries) == 0 {
		return api.ErrEmptyWorkflow
	}

	for i, entry := range entries {
		if !entry.IsObject() {
			return fmt.Errorf("%w: index %d: entry is not an object",
				api.ErrInvalidStep, i)
		}
		file := entry.Get(fileKey)
		switch {
		case !file.Exists():
			return fmt.Errorf("%w: index %d: missing %q",
				api.ErrInvalidStep, i, fileKey)
		case file.Type != gjson.String:
			return fmt.Errorf("%w: index %d: %q must be a string",
				api.ErrInvalidStep, i, fileKey)
		case strings.TrimSpace(file.String()) == "":
			return fmt.Errorf("%w: index %d: %q is empty",
				api.ErrInvalidStep, i, fileKey)
		}
	}
	return nil
}
