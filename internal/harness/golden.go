package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/linearize/internal/cli"
)

// AssertGolden compares a Result's rendered verdict against
// testdata/golden/<scenario-name>.golden. It uses cli.RenderVerdict rather
// than cli.RenderReport: the full report carries visited/skipped counters
// that vary with worker count and goroutine scheduling, which would make
// the golden file flaky. Regenerate golden files with:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, r *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	rendered := cli.RenderVerdict(r.Report)
	g.Assert(t, r.Scenario.Name, []byte(rendered))
}
