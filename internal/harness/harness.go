package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/linearize/internal/history"
	"github.com/roach88/linearize/internal/linearize"
)

// Result is the outcome of running a scenario.
type Result struct {
	Scenario *Scenario
	Report   *linearize.Report
}

// Run loads the scenario's fixture and runs Analyze against it. It does
// not assert anything itself - use CheckExpectations (and AssertGolden
// in a *testing.T context) to check the result against the scenario's
// expectations.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	fixture, err := history.LoadFixture(scenario.Fixture)
	if err != nil {
		return nil, fmt.Errorf("harness: load fixture: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	report, err := linearize.Analyze(ctx, fixture.Model, fixture.History, linearize.WithWorkers(4))
	if err != nil {
		return nil, fmt.Errorf("harness: analyze: %w", err)
	}

	return &Result{Scenario: scenario, Report: report}, nil
}

// Mismatch describes a single way a Result's report disagreed with its
// scenario's expectations.
type Mismatch struct {
	Field string
	Want  any
	Got   any
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: want %v, got %v", m.Field, m.Want, m.Got)
}

// CheckExpectations compares a Result's report against its scenario's
// expect_valid/expect_prefix_len fields, returning every mismatch found.
func CheckExpectations(r *Result) []Mismatch {
	var mismatches []Mismatch

	if r.Report.Valid != r.Scenario.ExpectValid {
		mismatches = append(mismatches, Mismatch{Field: "valid", Want: r.Scenario.ExpectValid, Got: r.Report.Valid})
	}
	if len(r.Report.LinearizablePrefix) != r.Scenario.ExpectPrefixLen {
		mismatches = append(mismatches, Mismatch{
			Field: "prefix_len",
			Want:  r.Scenario.ExpectPrefixLen,
			Got:   len(r.Report.LinearizablePrefix),
		})
	}

	return mismatches
}
