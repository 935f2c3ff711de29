package api

type (
	// Payload is the opaque value threaded between steps. A nil Payload is
	// the "no value" sentinel seen by the first step of a run
	Payload any

	// Step is a resolved, invocable node. Invoke receives the previous
	// step's result and returns the value that replaces it
	Step interface {
		Invoke(Payload) (Payload, error)
	}

	// StepFunc adapts a plain function to the Step interface
	StepFunc func(Payload) (Payload, error)
)

// Invoke calls f with the given payload
func (f StepFunc) Invoke(p Payload) (Payload, error) {
	return f(p)
}
