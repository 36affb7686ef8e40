package linearize

import "fmt"

// InconsistentError is returned by Model.Step when an operation could not
// have legally occurred in the given state. It is absorbing in the sense
// that the search engine never calls Step again on a branch once it has
// produced one of these - the branch is simply discarded.
type InconsistentError struct {
	Op      Op
	Message string
}

func (e *InconsistentError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inconsistent: %s(%s) by %s", e.Op.Function, e.Op.Value, e.Op.Process)
	}
	return e.Message
}

// ExhaustedError is returned by the search engine when an Invoke event
// admits no consistent linearization at all - every candidate ordering of
// the operations pending at that point was rejected by the model. This
// aborts the entire search; it is distinct from an individual branch
// dying during exploration, which is expected and silent.
type ExhaustedError struct {
	AtIndex int
	Cause   error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no admissible linearization at history index %d: %v", e.AtIndex, e.Cause)
}

func (e *ExhaustedError) Unwrap() error { return e.Cause }

// PanicError wraps a recovered panic from an explorer worker goroutine. The
// search is aborted and this error is surfaced to the caller rather than
// crashing the process.
type PanicError struct {
	WorkerID int
	Value    any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("explorer worker %d panicked: %v", e.WorkerID, e.Value)
}

// EmptyHistoryError reports a history with no events at all. Analyze does
// not return it: an empty history is trivially linearizable, and Analyze
// reports it as valid with an empty prefix.
type EmptyHistoryError struct{}

func (e *EmptyHistoryError) Error() string {
	return "history has no events"
}
