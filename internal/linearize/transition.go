package linearize

// expandInvoke computes every successor world reachable from w when the
// next history event is the Invoke at invokeIdx. It adds the new
// invocation to the pending set, then walks every subset-and-permutation
// of the resulting pending set, calling Model.Step along each prefix and
// pruning as soon as a prefix becomes Inconsistent (there is no point
// trying longer prefixes built on top of a dead one).
//
// Every node visited during that walk - including the root, which commits
// nothing - is a valid successor world with index = invokeIdx+1. The root
// is always present and always consistent (it calls Step zero times), so
// in practice expandInvoke only returns an error when even committing
// nothing is somehow impossible, which should not happen for a
// well-formed history; it is handled defensively rather than assumed away.
func expandInvoke(w *World, h *annotatedHistory, invokeIdx int) ([]*World, error) {
	op := h.ops[invokeIdx]
	entry := pendingEntry{process: op.Process, invoke: op, outcome: h.outcomeFor(invokeIdx)}
	base := w.pending.withEntry(entry)

	var successors []*World
	var firstErr error
	var firstErrProcess ProcessID
	haveErr := false

	var walk func(remaining pendingSet, committed map[ProcessID]bool, fixedTail []Op, model Model)
	walk = func(remaining pendingSet, committed map[ProcessID]bool, fixedTail []Op, model Model) {
		pending := base.except(committed)
		fixed := make([]Op, 0, len(w.fixed)+len(fixedTail))
		fixed = append(fixed, w.fixed...)
		fixed = append(fixed, fixedTail...)
		successors = append(successors, &World{
			model:   model,
			fixed:   fixed,
			pending: pending,
			index:   invokeIdx + 1,
		})

		for _, e := range remaining {
			if e.outcome.Type == Fail {
				// guaranteed not to have happened; never a candidate to commit
				continue
			}
			nextModel, err := model.Step(e.invoke, e.outcome)
			if err != nil {
				if !haveErr || e.process < firstErrProcess {
					haveErr = true
					firstErr = err
					firstErrProcess = e.process
				}
				continue
			}
			nextCommitted := make(map[ProcessID]bool, len(committed)+1)
			for p := range committed {
				nextCommitted[p] = true
			}
			nextCommitted[e.process] = true

			nextTail := make([]Op, len(fixedTail)+1)
			copy(nextTail, fixedTail)
			nextTail[len(fixedTail)] = e.invoke

			walk(remaining.without(e.process), nextCommitted, nextTail, nextModel)
		}
	}
	walk(base, map[ProcessID]bool{}, nil, w.model)

	if len(successors) == 0 {
		if !haveErr {
			firstErr = &InconsistentError{Op: op, Message: "no admissible linearization for pending operations"}
		}
		return nil, firstErr
	}
	return successors, nil
}

// applySingleTransition applies a non-Invoke event to w, returning nil if
// the event cannot be explained by w (the branch is dead).
func applySingleTransition(w *World, op Op) *World {
	switch op.Type {
	case Ok:
		return applyOk(w, op)
	case Fail:
		return applyFail(w, op)
	case Info:
		return applyInfo(w, op)
	default:
		panic("linearize: applySingleTransition called with an Invoke event")
	}
}

func applyOk(w *World, op Op) *World {
	if _, found := w.pending.find(op.Process); found {
		// this world never decided to linearize the invocation before its
		// completion arrived - it cannot explain the completion.
		return nil
	}
	return &World{model: w.model, fixed: w.fixed, pending: w.pending, index: w.index + 1}
}

func applyFail(w *World, op Op) *World {
	idx, found := w.pending.find(op.Process)
	if !found {
		// already linearized into fixed, which contradicts Fail's guarantee
		// that the operation never took effect.
		return nil
	}
	return &World{model: w.model, fixed: w.fixed, pending: w.pending.removeAt(idx), index: w.index + 1}
}

func applyInfo(w *World, op Op) *World {
	return &World{model: w.model, fixed: w.fixed, pending: w.pending, index: w.index + 1}
}
