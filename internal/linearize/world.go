package linearize

// pendingEntry is one outstanding invocation: the Invoke event that
// introduced it, and the completion event (Ok, Fail, or Info) that the
// full history eventually records for the same process. The completion is
// resolved once, up front, over the whole history (see annotate) - a
// World never needs to scan ahead itself.
type pendingEntry struct {
	process ProcessID
	invoke  Op
	outcome Op
}

// pendingSet is a slice of pendingEntry kept sorted by process. Sorting
// gives every World a single canonical representation of its pending set,
// which keeps hashing and the deterministic "all successors inconsistent"
// tie-break well defined.
type pendingSet []pendingEntry

func (p pendingSet) find(process ProcessID) (int, bool) {
	for i, e := range p {
		if e.process == process {
			return i, true
		}
	}
	return -1, false
}

func (p pendingSet) withEntry(e pendingEntry) pendingSet {
	out := make(pendingSet, len(p), len(p)+1)
	copy(out, p)
	i := 0
	for i < len(out) && out[i].process < e.process {
		i++
	}
	out = append(out, pendingEntry{})
	copy(out[i+1:], out[i:len(out)-1])
	out[i] = e
	return out
}

func (p pendingSet) without(process ProcessID) pendingSet {
	idx, ok := p.find(process)
	if !ok {
		return p
	}
	return p.removeAt(idx)
}

func (p pendingSet) removeAt(idx int) pendingSet {
	out := make(pendingSet, 0, len(p)-1)
	out = append(out, p[:idx]...)
	out = append(out, p[idx+1:]...)
	return out
}

func (p pendingSet) except(committed map[ProcessID]bool) pendingSet {
	out := make(pendingSet, 0, len(p))
	for _, e := range p {
		if !committed[e.process] {
			out = append(out, e)
		}
	}
	return out
}

// World is one candidate partial linearization: a model state reached by
// committing some prefix of operations, the invocations still outstanding
// when that state was reached, and the history cursor marking how much of
// the observed history has been accounted for.
type World struct {
	model   Model
	fixed   []Op
	pending pendingSet
	index   int
}

func newInitialWorld(model Model) *World {
	return &World{model: model, index: 0}
}

// Model returns the model state this world represents.
func (w *World) Model() Model { return w.model }

// Index returns how many history events this world has accounted for.
func (w *World) Index() int { return w.index }

// Fixed returns the ordered sequence of invocations this world has
// committed to having happened, in linearized order.
func (w *World) Fixed() []Op {
	out := make([]Op, len(w.fixed))
	copy(out, w.fixed)
	return out
}

// Pending returns the invoke events still outstanding in this world, in
// process order.
func (w *World) Pending() []Op {
	out := make([]Op, len(w.pending))
	for i, e := range w.pending {
		out[i] = e.invoke
	}
	return out
}
