package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleHistory() linearize.History {
	return linearize.History{
		{Type: linearize.Invoke, Process: "p1", Function: "write", Value: value.Int(1)},
		{Type: linearize.Ok, Process: "p1", Function: "write", Value: value.Int(1)},
	}
}

func TestWriteRunThenReadRunRoundTrips(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := RunRecord{
		ID:         "run-1",
		Source:     "fixtures/register.yaml",
		ModelName:  "register",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Valid:      true,
		PrefixLen:  2,
		HistoryLen: 2,
		Visited:    10,
		Skipped:    3,
		ReportText: "valid",
	}
	worlds := []WorldSnapshot{{
		EquivalenceKey: "abc123",
		ModelHash:      "def456",
		Index:          2,
		Fixed:          sampleHistory(),
		Pending:        nil,
	}}

	require.NoError(t, s.WriteRun(ctx, run, sampleHistory(), worlds))

	gotRun, gotHistory, gotWorlds, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	require.Equal(t, run.ID, gotRun.ID)
	require.Equal(t, run.ModelName, gotRun.ModelName)
	require.True(t, gotRun.Valid)
	require.Equal(t, sampleHistory(), gotHistory)
	require.Len(t, gotWorlds, 1)
	require.Equal(t, "abc123", gotWorlds[0].EquivalenceKey)
	require.Equal(t, sampleHistory(), linearize.History(gotWorlds[0].Fixed))
}

func TestWriteRunIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := RunRecord{ID: "run-1", ModelName: "register", StartedAt: time.Now(), FinishedAt: time.Now()}

	require.NoError(t, s.WriteRun(ctx, run, sampleHistory(), nil))
	require.NoError(t, s.WriteRun(ctx, run, sampleHistory(), nil))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestListRunsOrdersByStartTime(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := RunRecord{ID: "run-a", ModelName: "register", StartedAt: time.Now(), FinishedAt: time.Now()}
	second := RunRecord{ID: "run-b", ModelName: "register", StartedAt: time.Now().Add(time.Second), FinishedAt: time.Now()}

	require.NoError(t, s.WriteRun(ctx, second, sampleHistory(), nil))
	require.NoError(t, s.WriteRun(ctx, first, sampleHistory(), nil))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "run-a", runs[0].ID)
	require.Equal(t, "run-b", runs[1].ID)
}
