package cli

import (
	"fmt"
	"strings"

	"github.com/roach88/linearize/internal/linearize"
)

// RenderReport formats a Report as the text the "check" command prints in
// --format text mode, which is also the report text stored with a
// persisted run.
func RenderReport(report *linearize.Report) string {
	var b strings.Builder

	if report.Valid {
		fmt.Fprintf(&b, "valid: history is linearizable (%d events, %d visited, %d skipped)",
			len(report.LinearizablePrefix), report.Visited, report.Skipped)
		return b.String()
	}

	fmt.Fprintf(&b, "invalid: longest linearizable prefix is %d events\n", len(report.LinearizablePrefix))
	if report.InconsistentOp != nil {
		fmt.Fprintf(&b, "culprit: %s %s/%s\n", report.InconsistentOp.Type, report.InconsistentOp.Process, report.InconsistentOp.Function)
	}
	for i, t := range report.InconsistentTransitions {
		fmt.Fprintf(&b, "  world[%d]: %s\n", i, t.Message)
	}
	fmt.Fprintf(&b, "visited %d, skipped %d", report.Visited, report.Skipped)

	return b.String()
}

// RenderVerdict formats only the deterministic part of a Report: the
// verdict, prefix length, and culprit. Unlike RenderReport it omits
// visited/skipped counters and per-world InconsistentTransitions, both of
// which can vary run to run with worker count and scheduling even though
// the verdict itself never does - exactly the portion worth comparing
// byte-for-byte in a golden file.
func RenderVerdict(report *linearize.Report) string {
	if report.Valid {
		return fmt.Sprintf("valid: history is linearizable (%d events)", len(report.LinearizablePrefix))
	}

	s := fmt.Sprintf("invalid: longest linearizable prefix is %d events", len(report.LinearizablePrefix))
	if report.InconsistentOp != nil {
		s += fmt.Sprintf("\nculprit: %s %s/%s", report.InconsistentOp.Type, report.InconsistentOp.Process, report.InconsistentOp.Function)
	}
	return s
}
