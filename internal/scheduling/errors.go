package scheduling

import "fmt"

// ValidationError reports a draft field that blocks submission. It is only
// produced when submit is attempted; live edits surface advisory warnings
// instead of errors.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PersistenceError reports a rejected batch write. The reason is surfaced
// verbatim to the caller; no retry is attempted and the draft is preserved.
type PersistenceError struct {
	Reason string `json:"reason"`
}

func (e *PersistenceError) Error() string {
	return "persistence failed: " + e.Reason
}
