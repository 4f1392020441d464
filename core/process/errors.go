package process

import "fmt"

// ProcessingError is a whole-document failure. Individual stage failures are
// recovered locally and never reach the caller; this error only surfaces when
// assembling the final document itself fails.
type ProcessingError struct {
	PageID  string
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processing error: %s (page %s): %v", e.Message, e.PageID, e.Cause)
	}
	return fmt.Sprintf("processing error: %s (page %s)", e.Message, e.PageID)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}
