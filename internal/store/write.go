package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/linearize/internal/linearize"
)

// RunRecord is the persisted summary of one Analyze invocation.
type RunRecord struct {
	ID         string
	Source     string
	ModelName  string
	StartedAt  time.Time
	FinishedAt time.Time
	Valid      bool
	PrefixLen  int
	HistoryLen int
	Visited    int64
	Skipped    int64
	ReportText string
}

// WorldSnapshot is a persisted deepest world: enough to re-render what the
// search found without re-running it.
type WorldSnapshot struct {
	EquivalenceKey string
	ModelHash      string
	Index          int
	Fixed          []linearize.Op
	Pending        []linearize.Op
}

// WriteRun persists a run's summary, its full input history, and its
// deepest worlds in a single transaction. Uses ON CONFLICT DO NOTHING for
// idempotency - re-writing a run with the same ID is a no-op, matching the
// append-only, replay-safe storage pattern used throughout this store.
func (s *Store) WriteRun(ctx context.Context, run RunRecord, history linearize.History, worlds []WorldSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: write run: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, source, model_name, started_at, finished_at, valid, prefix_len, history_len, visited, skipped, report_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Source,
		run.ModelName,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(run.Valid),
		run.PrefixLen,
		run.HistoryLen,
		run.Visited,
		run.Skipped,
		run.ReportText,
	)
	if err != nil {
		return fmt.Errorf("store: write run: insert run: %w", err)
	}

	for seq, op := range history {
		valJSON, err := marshalValue(op.Value)
		if err != nil {
			return fmt.Errorf("store: write run: marshal event[%d]: %w", seq, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_events (run_id, seq, process, event_type, function, value)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id, seq) DO NOTHING
		`, run.ID, seq, string(op.Process), op.Type.String(), string(op.Function), valJSON)
		if err != nil {
			return fmt.Errorf("store: write run: insert event[%d]: %w", seq, err)
		}
	}

	for _, w := range worlds {
		fixedJSON, err := marshalOps(w.Fixed)
		if err != nil {
			return fmt.Errorf("store: write run: marshal fixed: %w", err)
		}
		pendingJSON, err := marshalOps(w.Pending)
		if err != nil {
			return fmt.Errorf("store: write run: marshal pending: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_worlds (run_id, equivalence_key, model_hash, index_reached, fixed_json, pending_json)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id, equivalence_key) DO NOTHING
		`, run.ID, w.EquivalenceKey, w.ModelHash, w.Index, fixedJSON, pendingJSON)
		if err != nil {
			return fmt.Errorf("store: write run: insert world: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: write run: commit: %w", err)
	}
	return nil
}

// SnapshotWorld builds a WorldSnapshot from a search World, ready to pass
// to WriteRun.
func SnapshotWorld(w *linearize.World) (WorldSnapshot, error) {
	key, err := linearize.EquivalenceKey(w)
	if err != nil {
		return WorldSnapshot{}, fmt.Errorf("store: snapshot world: %w", err)
	}
	modelHash, err := w.Model().Hash()
	if err != nil {
		return WorldSnapshot{}, fmt.Errorf("store: snapshot world: model hash: %w", err)
	}
	return WorldSnapshot{
		EquivalenceKey: key,
		ModelHash:      modelHash,
		Index:          w.Index(),
		Fixed:          w.Fixed(),
		Pending:        w.Pending(),
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
