package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

func TestCompleteLeavesFinishedHistoryUnchanged(t *testing.T) {
	h := linearize.History{
		{Type: linearize.Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: linearize.Ok, Process: "p1", Function: "write", Value: value.Int(1)},
	}
	out := Complete(h)
	assert.Equal(t, h, out)
}

func TestCompleteAppendsInfoForOutstandingInvoke(t *testing.T) {
	h := linearize.History{
		{Type: linearize.Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: linearize.Invoke, Process: "p2", Function: "read", Value: value.Null{}},
		{Type: linearize.Ok, Process: "p2", Function: "read", Value: value.Int(0)},
	}
	out := Complete(h)
	assert.Len(t, out, 4)
	last := out[3]
	assert.Equal(t, linearize.Info, last.Type)
	assert.Equal(t, linearize.ProcessID("p1"), last.Process)
	assert.Equal(t, linearize.Function("write"), last.Function)
	assert.Equal(t, value.Null{}, last.Value)
}

func TestCompleteHandlesMultipleOutstandingProcesses(t *testing.T) {
	h := linearize.History{
		{Type: linearize.Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: linearize.Invoke, Process: "p2", Function: "read", Value: value.Null{}},
	}
	out := Complete(h)
	assert.Len(t, out, 4)

	var infoProcesses []linearize.ProcessID
	for _, op := range out[2:] {
		assert.Equal(t, linearize.Info, op.Type)
		infoProcesses = append(infoProcesses, op.Process)
	}
	assert.ElementsMatch(t, []linearize.ProcessID{"p1", "p2"}, infoProcesses)
}

func TestCompleteUsesMostRecentInvokeForRepeatedProcess(t *testing.T) {
	h := linearize.History{
		{Type: linearize.Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: linearize.Ok, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: linearize.Invoke, Process: "p1", Function: "read", Value: value.Null{}},
	}
	out := Complete(h)
	assert.Len(t, out, 4)
	assert.Equal(t, linearize.Function("read"), out[3].Function)
}
