package directory

import "fmt"

// FetchError wraps any failure to fetch or parse directory records.
// A single malformed record fails the whole fetch.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("directory: failed to fetch pharmacy data: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
