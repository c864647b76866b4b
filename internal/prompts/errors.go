package prompts

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound is returned when the prompts directory or a
	// requested template file does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingPlaceholder is returned when a template references a
	// placeholder the caller did not supply.
	ErrMissingPlaceholder = errors.New("missing placeholder value")
)

// ReadError wraps an underlying failure reading a template that exists on disk.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("prompts: failed to read template %s: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
