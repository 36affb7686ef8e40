package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/linearize/internal/history"
	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/store"
)

// persistCheckRun opens dbPath, writes the run's summary, history, and
// deepest worlds, and closes it again. Errors here are never fatal to the
// check itself - the caller logs a warning and continues.
func persistCheckRun(ctx context.Context, dbPath, source string, fixture *history.Fixture, report *linearize.Report) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	worlds := make([]store.WorldSnapshot, 0, len(report.Worlds))
	for _, w := range report.Worlds {
		snap, err := store.SnapshotWorld(w)
		if err != nil {
			return fmt.Errorf("snapshot world: %w", err)
		}
		worlds = append(worlds, snap)
	}

	now := time.Now()
	run := store.RunRecord{
		ID:         uuid.NewString(),
		Source:     source,
		ModelName:  fixture.ModelName,
		StartedAt:  now,
		FinishedAt: now,
		Valid:      report.Valid,
		PrefixLen:  len(report.LinearizablePrefix),
		HistoryLen: len(fixture.History),
		Visited:    report.Visited,
		Skipped:    report.Skipped,
		ReportText: RenderReport(report),
	}

	return s.WriteRun(ctx, run, fixture.History, worlds)
}
