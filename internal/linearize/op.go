package linearize

import "github.com/roach88/linearize/internal/value"

// EventType identifies the role an Op plays in a history: the call of an
// operation, one of its two possible outcomes, or an ambiguous outcome
// whose effect on the system is unknown.
type EventType int

const (
	// Invoke records that a process called an operation.
	Invoke EventType = iota
	// Ok records that an operation returned successfully.
	Ok
	// Fail records that an operation is guaranteed not to have taken
	// effect (e.g. a client-observed timeout with no server-side retry).
	Fail
	// Info records that an operation's outcome is unknown - it may or may
	// not have taken effect (e.g. a timeout where the server could still
	// be processing the request).
	Info
)

func (t EventType) String() string {
	switch t {
	case Invoke:
		return "invoke"
	case Ok:
		return "ok"
	case Fail:
		return "fail"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// ProcessID identifies the client issuing a sequence of operations. A
// well-formed history never has two outstanding Invoke events for the
// same ProcessID.
type ProcessID string

// Function names the operation being invoked (e.g. "read", "write",
// "cas"). Models use this to decide how to interpret an Op's Value.
type Function string

// Op is a single event in a history: a process invoking an operation, or
// one of that operation's three possible completions.
type Op struct {
	Type     EventType
	Process  ProcessID
	Function Function
	Value    value.Value
}

// History is the full, ordered sequence of events a checker is asked to
// validate. Index order is the order events were observed, not the order
// operations were linearized.
type History []Op

// Len reports the number of events in the history.
func (h History) Len() int { return len(h) }
