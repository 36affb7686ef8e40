package models

import (
	"fmt"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

const casHashDomain = "models/cas/v1"

// CAS is a single-cell compare-and-swap register. invoke(cas, {old, new})
// succeeds and sets the cell to new iff the cell currently holds old; its
// completion reports that success as a boolean. An unconfirmed (Info)
// outcome is treated permissively: the cell transitions to new only if
// old happens to match the current value, and never raises an error,
// since an unconfirmed CAS's actual effect is unknowable. read behaves as
// Register's does: it must report the cell's value, or no value at all.
type CAS struct {
	value value.Value
}

// NewCAS creates a CAS cell holding initial.
func NewCAS(initial value.Value) *CAS {
	return &CAS{value: orNull(initial)}
}

func (c *CAS) Step(invoke, outcome linearize.Op) (linearize.Model, error) {
	if invoke.Function == "read" {
		observed := invoke.Value
		if !isNull(outcome.Value) {
			observed = outcome.Value
		}
		if isNull(observed) || valuesEqual(observed, c.value) {
			return c, nil
		}
		return nil, &linearize.InconsistentError{Op: invoke, Message: fmt.Sprintf("read by %s returned %v, cell holds %v", invoke.Process, observed, c.value)}
	}
	if invoke.Function != "cas" {
		return nil, &linearize.InconsistentError{Op: invoke, Message: fmt.Sprintf("cas register: unknown function %q", invoke.Function)}
	}

	obj, ok := invoke.Value.(value.Object)
	if !ok {
		return nil, &linearize.InconsistentError{Op: invoke, Message: "cas: invocation value must be an object with old and new fields"}
	}
	old, hasOld := obj["old"]
	newVal, hasNew := obj["new"]
	if !hasOld || !hasNew {
		return nil, &linearize.InconsistentError{Op: invoke, Message: "cas: invocation value must carry old and new fields"}
	}

	matches := valuesEqual(old, c.value)

	if outcome.Type == linearize.Ok {
		success, ok := outcome.Value.(value.Bool)
		if !ok {
			return nil, &linearize.InconsistentError{Op: invoke, Message: "cas: completion value must be a boolean success flag"}
		}
		if bool(success) != matches {
			return nil, &linearize.InconsistentError{
				Op:      invoke,
				Message: fmt.Sprintf("cas by %s reported success=%v but old=%v, cell=%v", invoke.Process, success, old, c.value),
			}
		}
	}

	if matches {
		return &CAS{value: newVal}, nil
	}
	return c, nil
}

func (c *CAS) Equal(other linearize.Model) bool {
	o, ok := other.(*CAS)
	return ok && valuesEqual(c.value, o.value)
}

func (c *CAS) Hash() (string, error) {
	return value.HashValue(casHashDomain, c.value)
}
