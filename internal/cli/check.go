package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/linearize/internal/history"
	"github.com/roach88/linearize/internal/linearize"
)

// CheckResult is the JSON-serializable outcome of a check run.
type CheckResult struct {
	Valid      bool   `json:"valid"`
	PrefixLen  int    `json:"prefix_len"`
	HistoryLen int    `json:"history_len"`
	Visited    int64  `json:"visited"`
	Skipped    int64  `json:"skipped"`
	Culprit    string `json:"culprit,omitempty"`
}

// NewCheckCommand creates the "check" subcommand.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	var timeout time.Duration
	var dbPath string

	cmd := &cobra.Command{
		Use:           "check <history.yaml>",
		Short:         "Check whether a history fixture is linearizable",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], timeout, dbPath, cmd)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "maximum time to spend searching")
	cmd.Flags().StringVar(&dbPath, "db", "", "optional SQLite database to persist the run to")

	return cmd
}

func runCheck(opts *RootOptions, path string, timeout time.Duration, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	fixture, err := history.LoadFixture(path)
	if err != nil {
		return outputCheckError(formatter, "E_LOAD", err.Error())
	}
	formatter.VerboseLog("loaded fixture %s: %d events", path, len(fixture.History))

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	report, err := linearize.Analyze(ctx, fixture.Model, fixture.History, analyzeOptions(opts)...)
	if err != nil {
		return outputCheckError(formatter, "E_ANALYZE", err.Error())
	}

	if dbPath != "" {
		if err := persistCheckRun(ctx, dbPath, path, fixture, report); err != nil {
			formatter.VerboseLog("warning: failed to persist run: %v", err)
		}
	}

	result := CheckResult{
		Valid:      report.Valid,
		PrefixLen:  len(report.LinearizablePrefix),
		HistoryLen: len(fixture.History),
		Visited:    report.Visited,
		Skipped:    report.Skipped,
	}
	if report.InconsistentOp != nil {
		result.Culprit = fmt.Sprintf("%s %s/%s", report.InconsistentOp.Type, report.InconsistentOp.Process, report.InconsistentOp.Function)
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer, RenderReport(report))
	}

	if !report.Valid {
		return NewExitError(ExitFailure, "history is not linearizable")
	}
	return nil
}

func analyzeOptions(opts *RootOptions) []linearize.Option {
	var out []linearize.Option
	if opts.Workers > 0 {
		out = append(out, linearize.WithWorkers(opts.Workers))
	}
	if opts.SeenCacheEntries > 0 {
		out = append(out, linearize.WithSeenCacheCapacity(opts.SeenCacheEntries))
	}
	return out
}

func outputCheckError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, message)
}
