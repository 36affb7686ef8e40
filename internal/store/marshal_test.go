package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

func TestMarshalUnmarshalValueRoundTrips(t *testing.T) {
	for _, v := range []value.Value{
		value.Null{},
		value.Int(42),
		value.String("hello"),
		value.Bool(true),
		value.Array{value.Int(1), value.Int(2)},
		value.Object{"old": value.Int(1), "new": value.Int(2)},
	} {
		data, err := marshalValue(v)
		require.NoError(t, err)
		got, err := unmarshalValue(data)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestMarshalUnmarshalOpsRoundTrips(t *testing.T) {
	ops := []linearize.Op{
		{Type: linearize.Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: linearize.Ok, Process: "p1", Function: "write", Value: value.Int(1)},
	}
	data, err := marshalOps(ops)
	require.NoError(t, err)
	got, err := unmarshalOps(data)
	require.NoError(t, err)
	assert.Equal(t, ops, got)
}

func TestUnmarshalOpsHandlesEmpty(t *testing.T) {
	got, err := unmarshalOps("")
	require.NoError(t, err)
	assert.Nil(t, got)
}
