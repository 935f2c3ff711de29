package api

import "encoding/json"

type (
	// Definition is an ordered, non-empty sequence of step descriptors.
	// Document holds the validated source document, including fields the
	// runner ignores such as node positions and edges
	Definition struct {
		Nodes    []*StepDescriptor `json:"nodes"`
		Document json.RawMessage   `json:"-"`
	}

	// StepDescriptor identifies one executable unit. File is the locator
	// handed to the resolver; ID and Name are informational only
	StepDescriptor struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
		File string `json:"file"`
	}
)

// Locators returns the step locators in declaration order
func (d *Definition) Locators() []string {
	res := make([]string, len(d.Nodes))
	for i, n := range d.Nodes {
		res[i] = n.File
	}
	return res
}

// Label returns the most descriptive identifier available for the step
func (s *StepDescriptor) Label() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.ID != "":
		return s.ID
	default:
		return s.File
	}
}
