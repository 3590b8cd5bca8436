package similarity

import "fmt"

// ComputationError indicates a component score could not be computed
// from the provided inputs.
type ComputationError struct {
	Component string
	Reason    string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("similarity computation failed for %s: %s", e.Component, e.Reason)
}

// BackendUnavailableError indicates the embedding backend could not be
// reached. The engine recovers from it internally by falling back to
// lexical similarity; it surfaces only through logs and confidence.
type BackendUnavailableError struct {
	Backend string
	Err     error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("embedding backend %s unavailable: %v", e.Backend, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}
