package linearize

import "sync/atomic"

// deepestState is the immutable snapshot swapped in by Deepest's CAS loop:
// the largest history index any registered world has reached, and every
// registered world that reached it.
type deepestState struct {
	maxIndex int
	worlds   []*World
}

// Deepest tracks every world, across all explorer goroutines, that has
// reached the largest history index seen so far. It is updated via a
// compare-and-swap loop rather than a mutex: readers (the analyzer, the
// optional progress reporter) tolerate a transiently stale snapshot, and
// writes are frequent enough that contention on a single mutex would hurt
// more than the occasional wasted retry here.
type Deepest struct {
	state atomic.Pointer[deepestState]
}

// NewDeepest creates a Deepest tracker seeded with the search's initial
// world.
func NewDeepest(initial *World) *Deepest {
	d := &Deepest{}
	d.state.Store(&deepestState{maxIndex: initial.index, worlds: []*World{initial}})
	return d
}

// Update registers w as having been reached. If w.index exceeds the
// current maximum, it replaces the tracked set; if it ties the maximum,
// it is appended; if it falls short, Update is a no-op.
func (d *Deepest) Update(w *World) {
	for {
		old := d.state.Load()
		var next *deepestState
		switch {
		case w.index > old.maxIndex:
			next = &deepestState{maxIndex: w.index, worlds: []*World{w}}
		case w.index == old.maxIndex:
			worlds := make([]*World, len(old.worlds), len(old.worlds)+1)
			copy(worlds, old.worlds)
			worlds = append(worlds, w)
			next = &deepestState{maxIndex: w.index, worlds: worlds}
		default:
			return
		}
		if d.state.CompareAndSwap(old, next) {
			return
		}
	}
}

// Snapshot returns the current maximum index reached and the worlds that
// reached it.
func (d *Deepest) Snapshot() (int, []*World) {
	s := d.state.Load()
	return s.maxIndex, s.worlds
}
