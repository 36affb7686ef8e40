package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/linearize/internal/linearize"
)

// ReadRun retrieves a run's summary, its full input history, and its
// deepest worlds by run ID. Returns sql.ErrNoRows if the run doesn't exist.
func (s *Store) ReadRun(ctx context.Context, id string) (RunRecord, linearize.History, []WorldSnapshot, error) {
	run, err := s.readRunRecord(ctx, id)
	if err != nil {
		return RunRecord{}, nil, nil, err
	}

	history, err := s.readRunHistory(ctx, id)
	if err != nil {
		return RunRecord{}, nil, nil, err
	}

	worlds, err := s.readRunWorlds(ctx, id)
	if err != nil {
		return RunRecord{}, nil, nil, err
	}

	return run, history, worlds, nil
}

// ListRuns returns every persisted run, ordered oldest-first.
func (s *Store) ListRuns(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, model_name, started_at, finished_at, valid, prefix_len, history_len, visited, skipped, report_text
		FROM runs
		ORDER BY started_at ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRunRecord(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list runs: iterate: %w", err)
	}
	return runs, nil
}

func (s *Store) readRunRecord(ctx context.Context, id string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, model_name, started_at, finished_at, valid, prefix_len, history_len, visited, skipped, report_text
		FROM runs
		WHERE id = ?
	`, id)
	return scanRunRecord(row)
}

func (s *Store) readRunHistory(ctx context.Context, id string) (linearize.History, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT process, event_type, function, value
		FROM run_events
		WHERE run_id = ?
		ORDER BY seq ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("store: read run history: %w", err)
	}
	defer rows.Close()

	var h linearize.History
	for rows.Next() {
		var process, eventType, function, val string
		if err := rows.Scan(&process, &eventType, &function, &val); err != nil {
			return nil, fmt.Errorf("store: read run history: scan: %w", err)
		}
		et, err := parseEventTypeString(eventType)
		if err != nil {
			return nil, fmt.Errorf("store: read run history: %w", err)
		}
		v, err := unmarshalValue(val)
		if err != nil {
			return nil, fmt.Errorf("store: read run history: %w", err)
		}
		h = append(h, linearize.Op{
			Type:     et,
			Process:  linearize.ProcessID(process),
			Function: linearize.Function(function),
			Value:    v,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: read run history: iterate: %w", err)
	}
	return h, nil
}

func (s *Store) readRunWorlds(ctx context.Context, id string) ([]WorldSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT equivalence_key, model_hash, index_reached, fixed_json, pending_json
		FROM run_worlds
		WHERE run_id = ?
		ORDER BY equivalence_key COLLATE BINARY ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("store: read run worlds: %w", err)
	}
	defer rows.Close()

	var worlds []WorldSnapshot
	for rows.Next() {
		var key, modelHash, fixedJSON, pendingJSON string
		var index int
		if err := rows.Scan(&key, &modelHash, &index, &fixedJSON, &pendingJSON); err != nil {
			return nil, fmt.Errorf("store: read run worlds: scan: %w", err)
		}
		fixed, err := unmarshalOps(fixedJSON)
		if err != nil {
			return nil, fmt.Errorf("store: read run worlds: %w", err)
		}
		pending, err := unmarshalOps(pendingJSON)
		if err != nil {
			return nil, fmt.Errorf("store: read run worlds: %w", err)
		}
		worlds = append(worlds, WorldSnapshot{
			EquivalenceKey: key,
			ModelHash:      modelHash,
			Index:          index,
			Fixed:          fixed,
			Pending:        pending,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: read run worlds: iterate: %w", err)
	}
	return worlds, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunRecord(row rowScanner) (RunRecord, error) {
	var run RunRecord
	var startedAt, finishedAt string
	var valid int
	err := row.Scan(
		&run.ID, &run.Source, &run.ModelName, &startedAt, &finishedAt,
		&valid, &run.PrefixLen, &run.HistoryLen, &run.Visited, &run.Skipped, &run.ReportText,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, err
		}
		return RunRecord{}, fmt.Errorf("store: scan run: %w", err)
	}

	run.Valid = valid != 0
	run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("store: scan run: parse started_at: %w", err)
	}
	run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("store: scan run: parse finished_at: %w", err)
	}
	return run, nil
}
