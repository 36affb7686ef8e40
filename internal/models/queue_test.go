package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

func TestQueueEnqueueDequeueFIFO(t *testing.T) {
	q := NewQueue()

	afterA, err := q.Step(linearize.Op{Function: "enqueue", Process: "p1", Value: value.Int(1)}, linearize.Op{Type: linearize.Ok})
	require.NoError(t, err)

	afterB, err := afterA.Step(linearize.Op{Function: "enqueue", Process: "p2", Value: value.Int(2)}, linearize.Op{Type: linearize.Ok})
	require.NoError(t, err)

	afterDeq, err := afterB.Step(
		linearize.Op{Function: "dequeue", Process: "p3", Value: value.Null{}},
		linearize.Op{Type: linearize.Ok, Value: value.Int(1)},
	)
	require.NoError(t, err)

	_, err = afterDeq.Step(
		linearize.Op{Function: "dequeue", Process: "p4", Value: value.Null{}},
		linearize.Op{Type: linearize.Ok, Value: value.Int(2)},
	)
	assert.NoError(t, err)
}

func TestQueueDequeueRejectsWrongHead(t *testing.T) {
	q := NewQueue()
	afterA, err := q.Step(linearize.Op{Function: "enqueue", Process: "p1", Value: value.Int(1)}, linearize.Op{Type: linearize.Ok})
	require.NoError(t, err)

	_, err = afterA.Step(
		linearize.Op{Function: "dequeue", Process: "p2", Value: value.Null{}},
		linearize.Op{Type: linearize.Ok, Value: value.Int(99)},
	)
	assert.Error(t, err)
}

func TestQueueDequeueOnEmptyRejectsNonNull(t *testing.T) {
	q := NewQueue()
	_, err := q.Step(
		linearize.Op{Function: "dequeue", Process: "p1", Value: value.Null{}},
		linearize.Op{Type: linearize.Ok, Value: value.Int(1)},
	)
	assert.Error(t, err)
}
