package linearize

// Model is a sequential specification: a state machine that knows, for any
// state and any single operation, either the resulting state or that the
// operation could never have happened in that state.
//
// Implementations must be immutable - Step returns a new Model rather than
// mutating the receiver - since the same Model value is shared across many
// concurrently-explored branches of the search.
type Model interface {
	// Step applies one invocation-and-outcome pair to the receiver and
	// returns the resulting state. invoke is always an Invoke event;
	// outcome is the completion the full history eventually records for
	// the same process and is always Ok or Info - the search never asks a
	// model to step an operation whose outcome is Fail, since Fail
	// guarantees the operation never took effect.
	//
	// Implementations decide for themselves whether an operation's
	// effect is determined by invoke.Value (writes, enqueues), by
	// outcome.Value (reads, dequeues), or by both together
	// (compare-and-swap, which needs the request's old/new pair and the
	// response's success flag at the same time).
	//
	// Step returns an *InconsistentError if the pair could not have
	// legally occurred in the receiver's state. It must never panic for
	// this; panics are reserved for genuine implementation bugs and are
	// caught at the explorer level.
	Step(invoke, outcome Op) (Model, error)

	// Equal reports whether the receiver and other represent the same
	// logical state. Two models that are Equal must also produce equal
	// Hash values.
	Equal(other Model) bool

	// Hash returns a stable, content-derived identifier for the
	// receiver's state, used as the model component of a World's
	// equivalence key in the Seen cache.
	Hash() (string, error)
}
