// Package linearize implements a parallel, memoizing linearizability
// checker: given a sequential Model and a concurrent History of
// invocations and completions, it searches for an interleaving of
// operations that both respects each process's real-time order and is
// legal according to the model.
//
// The search explores a tree of Worlds - partial linearizations - across
// a pool of goroutines, coordinated through a priority Frontier and
// pruned by a bounded Seen cache so that equivalent states are not
// re-explored. Analyze is the entry point most callers want; it returns a
// full diagnostic Report rather than a bare boolean.
package linearize
