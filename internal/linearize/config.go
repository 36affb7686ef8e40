package linearize

import (
	"runtime"
	"time"
)

// config holds the tunables an Option can override. Zero-value configs are
// never used directly - defaultConfig always seeds sane values first.
type config struct {
	workers           int
	seenCacheCapacity int
	pollTimeout       time.Duration
	reportEvery       time.Duration
}

func defaultConfig() *config {
	return &config{
		workers:           runtime.GOMAXPROCS(0) + 2,
		seenCacheCapacity: DefaultSeenCapacity,
		pollTimeout:       DefaultPollTimeout,
		reportEvery:       0,
	}
}

// Option configures a call to Analyze or LinearizablePrefixAndWorlds.
type Option func(*config)

// WithWorkers overrides the number of explorer goroutines. The default is
// runtime.GOMAXPROCS(0)+2, which keeps every CPU busy while leaving enough
// slack for goroutines parked on a Frontier poll.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithSeenCacheCapacity overrides the number of slots in the Seen cache.
// Rounded up to the next power of two by NewSeen.
func WithSeenCacheCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.seenCacheCapacity = n
		}
	}
}

// WithPollTimeout overrides how long an idle explorer worker waits on the
// frontier before re-checking termination conditions.
func WithPollTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.pollTimeout = d
		}
	}
}

// WithProgressInterval makes Analyze log a periodic, observational-only
// progress line (visited/skipped counts and the deepest index reached) at
// the given interval. Disabled by default.
func WithProgressInterval(d time.Duration) Option {
	return func(c *config) {
		c.reportEvery = d
	}
}
