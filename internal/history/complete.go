package history

import (
	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

// Complete returns a copy of h with a synthetic Info appended for every
// process whose last event is an Invoke with no matching Ok/Fail. This is
// the only repair the checker performs: it does not reorder events, merge
// anything, or guess at timing. A process left hanging mid-call is exactly
// the case Info exists to model - its effect on the system is unknown, so
// the search must consider both outcomes.
//
// The synthetic Info carries the process's most recently invoked function
// and value.Null{} as its value, and is appended after the last real event
// of that process, so it sorts after every genuine completion.
func Complete(h linearize.History) linearize.History {
	outstanding := make(map[linearize.ProcessID]linearize.Function)

	for _, op := range h {
		switch op.Type {
		case linearize.Invoke:
			outstanding[op.Process] = op.Function
		case linearize.Ok, linearize.Fail, linearize.Info:
			delete(outstanding, op.Process)
		}
	}

	if len(outstanding) == 0 {
		out := make(linearize.History, len(h))
		copy(out, h)
		return out
	}

	out := make(linearize.History, 0, len(h)+len(outstanding))
	out = append(out, h...)

	// Deterministic order: one Info per outstanding process, in the order
	// of each such process's first Invoke in h.
	seen := make(map[linearize.ProcessID]bool, len(outstanding))
	for _, op := range h {
		if op.Type != linearize.Invoke {
			continue
		}
		fn, stillOutstanding := outstanding[op.Process]
		if !stillOutstanding || seen[op.Process] {
			continue
		}
		seen[op.Process] = true
		out = append(out, linearize.Op{
			Type:     linearize.Info,
			Process:  op.Process,
			Function: fn,
			Value:    value.Null{},
		})
	}

	return out
}
