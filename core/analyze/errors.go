package analyze

import "fmt"

// AnalysisError is an unrecoverable failure inside a corpus operation.
// Empty input is a defined valid case and never produces one.
type AnalysisError struct {
	Operation  string
	CorpusSize int
	Message    string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error: %s failed over %d documents: %s", e.Operation, e.CorpusSize, e.Message)
}
