package linearize

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPollTimeout bounds how long an idle explorer worker waits on the
// frontier before re-checking whether the search should stop. It trades
// termination latency (how quickly a pool of idle workers notices the
// search is over) against wakeup overhead.
const DefaultPollTimeout = 10 * time.Millisecond

// explorerPool is a fixed-size group of goroutines that drain the
// Frontier, expand each world they pop, and feed consistent, previously-
// unseen successors back in. It stops when one of three things happens:
// a world reaches the end of the history (accept), the frontier and every
// in-flight expansion drain to nothing (reject), or the context is
// cancelled.
type explorerPool struct {
	history     *annotatedHistory
	frontier    *Frontier
	seen        *Seen
	deepest     *Deepest
	workers     int
	pollTimeout time.Duration

	running  atomic.Bool
	extant   atomic.Int64
	visited  atomic.Int64
	skipped  atomic.Int64
}

func newExplorerPool(h *annotatedHistory, workers int, seenCapacity int, pollTimeout time.Duration, initial *World) *explorerPool {
	p := &explorerPool{
		history:     h,
		frontier:    NewFrontier(),
		seen:        NewSeen(seenCapacity),
		deepest:     NewDeepest(initial),
		workers:     workers,
		pollTimeout: pollTimeout,
	}
	p.running.Store(true)
	p.extant.Store(1)
	p.frontier.Put(initial)
	return p
}

// run blocks until the pool reaches one of its termination conditions, or
// until a worker returns an error (an ExhaustedError from the search
// itself, a PanicError from a recovered panic, or ctx.Err()).
func (p *explorerPool) run(ctx context.Context) error {
	var wg sync.WaitGroup
	errCh := make(chan error, p.workers)

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := p.worker(ctx, id); err != nil {
				errCh <- err
			}
		}(i)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *explorerPool) worker(ctx context.Context, id int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("explorer worker panicked", "worker", id, "panic", r)
			p.running.Store(false)
			err = &PanicError{WorkerID: id, Value: r}
		}
	}()

	for p.running.Load() && p.extant.Load() > 0 {
		select {
		case <-ctx.Done():
			p.running.Store(false)
			return ctx.Err()
		default:
		}

		w, ok := p.frontier.Poll(p.pollTimeout)
		if !ok {
			continue
		}

		successors, stepErr := expandThenPrune(w, p.history, p.deepest.Update)
		if stepErr != nil {
			p.running.Store(false)
			p.extant.Add(-1)
			return &ExhaustedError{AtIndex: w.index, Cause: stepErr}
		}

		for _, succ := range successors {
			p.visited.Add(1)
			if succ.index >= len(p.history.ops) {
				p.running.Store(false)
			}

			seen, seenErr := p.seen.SeenBefore(succ)
			if seenErr != nil {
				p.running.Store(false)
				p.extant.Add(-1)
				return seenErr
			}
			if seen {
				p.skipped.Add(1)
				continue
			}

			p.extant.Add(1)
			p.frontier.Put(succ)
		}

		p.extant.Add(-1)
	}

	p.running.Store(false)
	return nil
}
