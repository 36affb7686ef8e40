package models

import (
	"fmt"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

const queueHashDomain = "models/queue/v1"

// Queue is an append-only FIFO queue. enqueue(v) always succeeds and
// appends v to the tail; dequeue() succeeds iff the value it reports
// matches the current head (removing it). A dequeue that reports no value
// is a wildcard: it removes the head of a non-empty queue and leaves an
// empty queue unchanged.
type Queue struct {
	items value.Array
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Step(invoke, outcome linearize.Op) (linearize.Model, error) {
	switch invoke.Function {
	case "enqueue":
		items := make(value.Array, len(q.items)+1)
		copy(items, q.items)
		items[len(q.items)] = orNull(invoke.Value)
		return &Queue{items: items}, nil
	case "dequeue":
		observed := invoke.Value
		if !isNull(outcome.Value) {
			observed = outcome.Value
		}
		if len(q.items) == 0 {
			if isNull(observed) {
				return q, nil
			}
			return nil, &linearize.InconsistentError{Op: invoke, Message: fmt.Sprintf("dequeue by %s returned %v, queue is empty", invoke.Process, observed)}
		}
		if !isNull(observed) && !valuesEqual(observed, q.items[0]) {
			return nil, &linearize.InconsistentError{Op: invoke, Message: fmt.Sprintf("dequeue by %s returned %v, head is %v", invoke.Process, observed, q.items[0])}
		}
		items := make(value.Array, len(q.items)-1)
		copy(items, q.items[1:])
		return &Queue{items: items}, nil
	default:
		return nil, &linearize.InconsistentError{Op: invoke, Message: fmt.Sprintf("queue: unknown function %q", invoke.Function)}
	}
}

func (q *Queue) Equal(other linearize.Model) bool {
	o, ok := other.(*Queue)
	if !ok || len(q.items) != len(o.items) {
		return false
	}
	for i := range q.items {
		if !valuesEqual(q.items[i], o.items[i]) {
			return false
		}
	}
	return true
}

func (q *Queue) Hash() (string, error) {
	return value.HashValue(queueHashDomain, q.items)
}
