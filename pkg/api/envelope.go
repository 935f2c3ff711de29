package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope is the terminal value of a run. Exactly one of its two variants
// is present: a result payload or an error message. It is never mutated
// after creation
type Envelope struct {
	result  Payload
	message string
	failed  bool
}

var (
	ErrEnvelopeVariant = errors.New(
		"envelope must contain exactly one of result or error",
	)
)

// NewResult creates a success envelope wrapping the final payload
func NewResult(p Payload) *Envelope {
	return &Envelope{result: p}
}

// NewError creates a failure envelope carrying the error's message
func NewError(err error) *Envelope {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &Envelope{message: msg, failed: true}
}

// Result returns the final payload and whether the envelope is a success
func (e *Envelope) Result() (Payload, bool) {
	if e.failed {
		return nil, false
	}
	return e.result, true
}

// ErrorMessage returns the error message and whether the envelope is a
// failure
func (e *Envelope) ErrorMessage() (string, bool) {
	if !e.failed {
		return "", false
	}
	return e.message, true
}

// Failed reports whether the envelope holds the error variant
func (e *Envelope) Failed() bool {
	return e.failed
}

// MarshalJSON renders {"result": ...} or {"error": "..."}. The result key is
// emitted even when the payload is nil
func (e *Envelope) MarshalJSON() ([]byte, error) {
	if e.failed {
		return json.Marshal(map[string]string{"error": e.message})
	}
	data, err := json.Marshal(e.result)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{"result": data})
}

// UnmarshalJSON decodes either envelope variant
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	res, hasResult := raw["result"]
	msg, hasError := raw["error"]
	switch {
	case hasError && !hasResult:
		var m string
		if err := json.Unmarshal(msg, &m); err != nil {
			return err
		}
		*e = Envelope{message: m, failed: true}
		return nil
	case hasResult && !hasError:
		var p any
		if err := json.Unmarshal(res, &p); err != nil {
			return err
		}
		*e = Envelope{result: p}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrEnvelopeVariant, string(data))
	}
}
