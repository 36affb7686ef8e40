package models

import (
	"fmt"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

const mutexHashDomain = "models/mutex/v1"

// Mutex is a simple lock: lock() succeeds iff the lock is currently free;
// unlock() succeeds iff it is currently held. Neither function's value
// carries any information - only Function and current state matter.
type Mutex struct {
	locked bool
}

// NewMutex creates an unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{}
}

func (m *Mutex) Step(invoke, outcome linearize.Op) (linearize.Model, error) {
	switch invoke.Function {
	case "lock":
		if m.locked {
			return nil, &linearize.InconsistentError{Op: invoke, Message: fmt.Sprintf("lock by %s: already held", invoke.Process)}
		}
		return &Mutex{locked: true}, nil
	case "unlock":
		if !m.locked {
			return nil, &linearize.InconsistentError{Op: invoke, Message: fmt.Sprintf("unlock by %s: not held", invoke.Process)}
		}
		return &Mutex{locked: false}, nil
	default:
		return nil, &linearize.InconsistentError{Op: invoke, Message: fmt.Sprintf("mutex: unknown function %q", invoke.Function)}
	}
}

func (m *Mutex) Equal(other linearize.Model) bool {
	o, ok := other.(*Mutex)
	return ok && m.locked == o.locked
}

func (m *Mutex) Hash() (string, error) {
	return value.HashValue(mutexHashDomain, value.Bool(m.locked))
}
