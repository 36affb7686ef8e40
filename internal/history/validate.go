package history

import (
	"fmt"

	"github.com/roach88/linearize/internal/linearize"
)

// ValidationError reports a well-formedness violation found by Validate.
type ValidationError struct {
	Index   int
	Op      linearize.Op
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("history[%d] (%s %s/%s): %s", e.Index, e.Op.Type, e.Op.Process, e.Op.Function, e.Message)
}

// Validate checks that h is well-formed: no process has two outstanding
// Invoke events before a completion arrives, and no Ok/Fail/Info appears
// for a process with no preceding Invoke. These are the two shapes of
// history the World's pending set (see the linearize package) cannot
// represent at all, so they must be caught before the search ever starts.
func Validate(h linearize.History) error {
	outstanding := make(map[linearize.ProcessID]bool)

	for i, op := range h {
		switch op.Type {
		case linearize.Invoke:
			if outstanding[op.Process] {
				return &ValidationError{Index: i, Op: op, Message: "process already has an outstanding invoke"}
			}
			outstanding[op.Process] = true
		case linearize.Ok, linearize.Fail, linearize.Info:
			if !outstanding[op.Process] {
				return &ValidationError{Index: i, Op: op, Message: "completion with no preceding invoke"}
			}
			outstanding[op.Process] = false
		default:
			return &ValidationError{Index: i, Op: op, Message: "unknown event type"}
		}
	}

	return nil
}
