package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

func TestCASSuccessTransitionsCell(t *testing.T) {
	c := NewCAS(value.Int(0))

	next, err := c.Step(
		linearize.Op{Function: "cas", Process: "p1", Value: value.Object{"old": value.Int(0), "new": value.Int(1)}},
		linearize.Op{Type: linearize.Ok, Value: value.Bool(true)},
	)
	require.NoError(t, err)
	assert.False(t, next.Equal(c))
}

func TestCASFailureLeavesCellUnchanged(t *testing.T) {
	c := NewCAS(value.Int(0))

	next, err := c.Step(
		linearize.Op{Function: "cas", Process: "p1", Value: value.Object{"old": value.Int(5), "new": value.Int(1)}},
		linearize.Op{Type: linearize.Ok, Value: value.Bool(false)},
	)
	require.NoError(t, err)
	assert.True(t, next.Equal(c))
}

func TestCASRejectsMismatchedSuccessFlag(t *testing.T) {
	c := NewCAS(value.Int(0))

	_, err := c.Step(
		linearize.Op{Function: "cas", Process: "p1", Value: value.Object{"old": value.Int(0), "new": value.Int(1)}},
		linearize.Op{Type: linearize.Ok, Value: value.Bool(false)},
	)
	assert.Error(t, err)
}

func TestCASUnconfirmedOutcomeNeverErrors(t *testing.T) {
	c := NewCAS(value.Int(0))

	_, err := c.Step(
		linearize.Op{Function: "cas", Process: "p1", Value: value.Object{"old": value.Int(0), "new": value.Int(1)}},
		linearize.Op{Type: linearize.Info},
	)
	assert.NoError(t, err)
}
