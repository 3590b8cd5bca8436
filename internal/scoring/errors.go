package scoring

import "fmt"

// MissingInputError indicates an evaluation was requested without the
// inputs it needs.
type MissingInputError struct {
	Field  string
	Reason string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input %s: %s", e.Field, e.Reason)
}
