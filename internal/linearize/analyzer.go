package linearize

import (
	"context"
	"log/slog"
	"time"
)

// InconsistentTransition pairs a model state from the last-consistent
// frontier with a message explaining why that world could not absorb the
// culprit operation (see explainFailure: for an Ok or Fail culprit the
// message describes the pending-state mismatch, without a Step call). Seeing several of these side by side often
// reveals which branch of the exploration "should" have been able to
// continue, which is useful when debugging a model implementation.
type InconsistentTransition struct {
	Model   Model
	Message string
}

// Report is the outcome of analyzing a history against a model.
type Report struct {
	// Valid is true iff the entire history is linearizable against Model.
	Valid bool

	// LinearizablePrefix is the longest prefix of the input history that
	// admits a consistent linearization. Equal to the full history when
	// Valid is true.
	LinearizablePrefix History

	// Worlds is the full set of equivalent worlds that reached the
	// deepest point in the search - every one of them accounts for
	// exactly LinearizablePrefix's worth of history.
	Worlds []*World

	// InconsistentOp is the first event beyond LinearizablePrefix that no
	// surviving world could accommodate. nil when Valid is true.
	InconsistentOp *Op

	// InconsistentTransitions explains, for each world in Worlds, why that
	// world could not absorb InconsistentOp. Empty when Valid is true.
	InconsistentTransitions []InconsistentTransition

	Visited int64
	Skipped int64
}

// Analyze checks whether history is linearizable against model and
// produces a full diagnostic Report. It is the primary entry point for
// callers that want more than a yes/no answer; LinearizablePrefixAndWorlds
// is available directly for callers that only need the prefix and do not
// want the cost of building InconsistentTransitions.
func Analyze(ctx context.Context, model Model, history History, opts ...Option) (*Report, error) {
	prefix, worlds, stats, err := linearizablePrefixAndWorlds(ctx, model, history, opts...)
	if err != nil {
		return nil, err
	}

	report := &Report{
		LinearizablePrefix: prefix,
		Worlds:             worlds,
		Visited:            stats.visited,
		Skipped:            stats.skipped,
	}

	if len(prefix) == len(history) {
		report.Valid = true
		return report, nil
	}

	culpritIdx := len(prefix)
	culprit := history[culpritIdx]
	report.InconsistentOp = &culprit

	ah := annotate(history)
	report.InconsistentTransitions = make([]InconsistentTransition, 0, len(worlds))
	for _, w := range worlds {
		report.InconsistentTransitions = append(report.InconsistentTransitions, InconsistentTransition{
			Model:   w.model,
			Message: explainFailure(w, culprit, culpritIdx, ah),
		})
	}

	return report, nil
}

// explainFailure describes why w could not absorb the culprit event at
// culpritIdx. For an Invoke culprit this means actually stepping the
// model against it and its own matched outcome. For an Ok or Fail
// culprit, the failure is structural - the operation's pending state
// didn't match what the completion required - so no Step call is
// involved.
func explainFailure(w *World, culprit Op, culpritIdx int, ah *annotatedHistory) string {
	switch culprit.Type {
	case Invoke:
		outcome := ah.outcomeFor(culpritIdx)
		if _, err := w.model.Step(culprit, outcome); err != nil {
			return err.Error()
		}
		return "admissible in isolation, but excluded by every surviving branch's choices so far"
	case Ok:
		if _, found := w.pending.find(culprit.Process); found {
			return string(culprit.Process) + "'s " + string(culprit.Function) + " was still pending when its completion arrived"
		}
		return ""
	case Fail:
		if _, found := w.pending.find(culprit.Process); !found {
			return string(culprit.Process) + "'s " + string(culprit.Function) + " had already been linearized when it was reported failed"
		}
		return ""
	default:
		return ""
	}
}

type searchStats struct {
	visited int64
	skipped int64
}

// LinearizablePrefixAndWorlds runs the search and returns the longest
// linearizable prefix of history together with every equivalent world that
// reached it. For a fully linearizable history, the returned prefix equals
// history itself.
func LinearizablePrefixAndWorlds(ctx context.Context, model Model, history History, opts ...Option) (History, []*World, error) {
	prefix, worlds, _, err := linearizablePrefixAndWorlds(ctx, model, history, opts...)
	return prefix, worlds, err
}

func linearizablePrefixAndWorlds(ctx context.Context, model Model, history History, opts ...Option) (History, []*World, searchStats, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if len(history) == 0 {
		initial := newInitialWorld(model)
		return History{}, []*World{initial}, searchStats{}, nil
	}

	ah := annotate(history)
	initial := newInitialWorld(model)
	pool := newExplorerPool(ah, cfg.workers, cfg.seenCacheCapacity, cfg.pollTimeout, initial)

	if cfg.reportEvery > 0 {
		reportCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go runProgressReporter(reportCtx, pool, cfg.reportEvery)
	}

	if err := pool.run(ctx); err != nil {
		return nil, nil, searchStats{}, err
	}

	maxIndex, worlds := pool.deepest.Snapshot()
	worlds = dedupeWorlds(worlds)

	stats := searchStats{visited: pool.visited.Load(), skipped: pool.skipped.Load()}

	if maxIndex >= len(history) {
		return history, worlds, stats, nil
	}
	return history[:maxIndex], worlds, stats, nil
}

// runProgressReporter logs periodic, observational-only search progress.
// It never mutates pool state and its absence would not change the
// outcome of a search - it exists purely for operators watching a long
// run.
func runProgressReporter(ctx context.Context, pool *explorerPool, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			maxIndex, _ := pool.deepest.Snapshot()
			slog.Info("linearize search progress",
				"visited", pool.visited.Load(),
				"skipped", pool.skipped.Load(),
				"frontier_len", pool.frontier.Len(),
				"deepest_index", maxIndex,
			)
		}
	}
}

// dedupeWorlds collapses worlds that share an equivalence key. All inputs
// are assumed to share the same index (Deepest only ever tracks worlds at
// the current maximum), so only the model/pending portion of the key can
// differ.
func dedupeWorlds(worlds []*World) []*World {
	seen := make(map[string]bool, len(worlds))
	out := make([]*World, 0, len(worlds))
	for _, w := range worlds {
		key, err := worldEquivalenceKey(w)
		if err != nil {
			out = append(out, w)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, w)
	}
	return out
}
