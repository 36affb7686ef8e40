package models

import (
	"fmt"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

const registerHashDomain = "models/register/v1"

// Register is a single cell holding one value: write(v) always succeeds
// and sets the cell to v; read() succeeds iff the value it reports
// matches the cell's current contents, or always succeeds if it reports
// no value at all (the wildcard case, used when a read's outcome was
// never confirmed).
type Register struct {
	value value.Value
}

// NewRegister creates a Register holding initial. A nil initial is
// treated as value.Null{}.
func NewRegister(initial value.Value) *Register {
	return &Register{value: orNull(initial)}
}

func (r *Register) Step(invoke, outcome linearize.Op) (linearize.Model, error) {
	switch invoke.Function {
	case "write":
		return &Register{value: orNull(invoke.Value)}, nil
	case "read":
		observed := invoke.Value
		if !isNull(outcome.Value) {
			observed = outcome.Value
		}
		if isNull(observed) {
			return r, nil
		}
		if !valuesEqual(observed, r.value) {
			return nil, &linearize.InconsistentError{
				Op:      invoke,
				Message: fmt.Sprintf("read by %s returned %v, register holds %v", invoke.Process, observed, r.value),
			}
		}
		return r, nil
	default:
		return nil, &linearize.InconsistentError{Op: invoke, Message: fmt.Sprintf("register: unknown function %q", invoke.Function)}
	}
}

func (r *Register) Equal(other linearize.Model) bool {
	o, ok := other.(*Register)
	return ok && valuesEqual(r.value, o.value)
}

func (r *Register) Hash() (string, error) {
	return value.HashValue(registerHashDomain, r.value)
}
