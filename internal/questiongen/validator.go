package questiongen

import "fmt"

// Validator checks generated content before it becomes a question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil if c is acceptable for the slot req.
	Validate(c *Content, req SlotRequest) *ValidationError
}

// ValidationError describes why content failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
