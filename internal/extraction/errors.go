package extraction

import "fmt"

// ParseFailureError indicates a document contained no usable text.
// Callers may recover by substituting an empty entity bag.
type ParseFailureError struct {
	DocumentID string
	Reason     string
}

func (e *ParseFailureError) Error() string {
	if e.DocumentID != "" {
		return fmt.Sprintf("parse failure for document %s: %s", e.DocumentID, e.Reason)
	}
	return fmt.Sprintf("parse failure: %s", e.Reason)
}
