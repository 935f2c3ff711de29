package api

import "errors"

// Definition errors
var (
	ErrSourceMissing       = errors.New("workflow source not found")
	ErrMalformedDefinition = errors.New(
		"workflow definition is not valid structured data",
	)
	ErrEmptyWorkflow = errors.New("workflow must contain at least one node")
	ErrInvalidStep   = errors.New("invalid node definition")
)

// Execution errors
var (
	ErrStepResolution = errors.New("node resolution failed")
	ErrStepExecution  = errors.New("node execution failed")
	ErrRunPanic       = errors.New("workflow run aborted by panic")
)

// Resolution sub-kinds, wrapped by ErrStepResolution
var (
	ErrUnitNotFound = errors.New("node unit not found")
	ErrUnitLoad     = errors.New("node unit failed to load")
	ErrContract     = errors.New("node unit violates the run contract")
)
