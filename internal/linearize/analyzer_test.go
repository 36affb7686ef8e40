package linearize_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/models"
	"github.com/roach88/linearize/internal/value"
)

func analyzeRegister(t *testing.T, h History) *Report {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	report, err := Analyze(ctx, models.NewRegister(value.Int(0)), h, WithWorkers(4))
	require.NoError(t, err)
	return report
}

func TestTrivialReadIsValid(t *testing.T) {
	h := History{
		{Type: Invoke, Process: "p1", Function: "read", Value: value.Null{}},
		{Type: Ok, Process: "p1", Function: "read", Value: value.Int(0)},
	}
	report := analyzeRegister(t, h)
	assert.True(t, report.Valid)
	assert.Equal(t, h, report.LinearizablePrefix)
}

func TestValidConcurrentReadBeforeWrite(t *testing.T) {
	h := History{
		{Type: Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: Invoke, Process: "p2", Function: "read", Value: value.Null{}},
		{Type: Ok, Process: "p2", Function: "read", Value: value.Int(0)},
		{Type: Ok, Process: "p1", Function: "write", Value: value.Int(1)},
	}
	report := analyzeRegister(t, h)
	assert.True(t, report.Valid)
}

func TestInvalidReadAfterCommittedWrite(t *testing.T) {
	h := History{
		{Type: Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: Ok, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: Invoke, Process: "p2", Function: "read", Value: value.Null{}},
		{Type: Ok, Process: "p2", Function: "read", Value: value.Int(0)},
	}
	report := analyzeRegister(t, h)
	require.False(t, report.Valid)
	assert.Len(t, report.LinearizablePrefix, 3)
	require.NotNil(t, report.InconsistentOp)
	assert.Equal(t, h[3], *report.InconsistentOp)
}

func TestFailedWriteIsNoOp(t *testing.T) {
	h := History{
		{Type: Invoke, Process: "p1", Function: "write", Value: value.Int(5)},
		{Type: Fail, Process: "p1", Function: "write", Value: value.Int(5)},
		{Type: Invoke, Process: "p2", Function: "read", Value: value.Null{}},
		{Type: Ok, Process: "p2", Function: "read", Value: value.Int(0)},
	}
	report := analyzeRegister(t, h)
	assert.True(t, report.Valid)
}

func TestInfoToleratedWhenReadPinsOutcome(t *testing.T) {
	h := History{
		{Type: Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: Info, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: Invoke, Process: "p2", Function: "read", Value: value.Null{}},
		{Type: Ok, Process: "p2", Function: "read", Value: value.Int(1)},
	}
	report := analyzeRegister(t, h)
	assert.True(t, report.Valid)
}

func TestTwoConcurrentWritesThenRead(t *testing.T) {
	h := History{
		{Type: Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: Invoke, Process: "p2", Function: "write", Value: value.Int(2)},
		{Type: Ok, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: Ok, Process: "p2", Function: "write", Value: value.Int(2)},
		{Type: Invoke, Process: "p3", Function: "read", Value: value.Null{}},
		{Type: Ok, Process: "p3", Function: "read", Value: value.Int(2)},
	}
	report := analyzeRegister(t, h)
	assert.True(t, report.Valid)
}

func TestAnalyzeEmptyHistoryIsValid(t *testing.T) {
	report, err := Analyze(context.Background(), models.NewRegister(value.Int(0)), History{})
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.LinearizablePrefix)
}
