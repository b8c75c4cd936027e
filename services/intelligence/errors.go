package ai

import "fmt"

// ValidationError signals malformed slots or intent coming back from the
// model. Recovered locally with a clarification request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// UpstreamError signals that the model or a downstream call failed. Not
// retried by this layer.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func NewUpstreamError(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
