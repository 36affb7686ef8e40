package linearize

// expandThenPrune advances w by exactly one history event's worth of
// branching, then fast-forwards every resulting world through any run of
// non-Invoke events that don't themselves branch, stopping at the next
// Invoke or the end of the history.
//
// register is called on every *consistent* world constructed along the
// way, including ones that die a step later while pruning - not just the
// ones ultimately returned. This is deliberate: the deepest index a branch
// reached before dying is exactly the diagnostic information the analyzer
// needs to report a culprit operation and a last-consistent-worlds set,
// and that information would be lost if only fully-pruned survivors were
// ever visible.
func expandThenPrune(w *World, h *annotatedHistory, register func(*World)) ([]*World, error) {
	if w.index >= len(h.ops) {
		register(w)
		return []*World{w}, nil
	}

	ev := h.ops[w.index]
	if ev.Type == Invoke {
		candidates, err := expandInvoke(w, h, w.index)
		if err != nil {
			return nil, err
		}
		survivors := make([]*World, 0, len(candidates))
		for _, c := range candidates {
			register(c)
			if pruned := prune(c, h, register); pruned != nil {
				survivors = append(survivors, pruned)
			}
		}
		return survivors, nil
	}

	next := applySingleTransition(w, ev)
	if next == nil {
		return nil, nil
	}
	register(next)
	pruned := prune(next, h, register)
	if pruned == nil {
		return nil, nil
	}
	return []*World{pruned}, nil
}

// prune fast-forwards w through consecutive non-Invoke events, returning
// nil the moment one of them cannot be explained.
func prune(w *World, h *annotatedHistory, register func(*World)) *World {
	cur := w
	for cur.index < len(h.ops) && h.ops[cur.index].Type != Invoke {
		next := applySingleTransition(cur, h.ops[cur.index])
		if next == nil {
			return nil
		}
		register(next)
		cur = next
	}
	return cur
}
