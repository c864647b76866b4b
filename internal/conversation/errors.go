package conversation

import "fmt"

// ModelCallError wraps a failure from a free-form reply generation call.
// The turn loop converts it into a fixed apology for the caller; extraction
// failures are skipped silently and never produce this error.
type ModelCallError struct {
	Err error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("conversation: failed to generate model response: %v", e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }
