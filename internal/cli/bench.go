package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/linearize/internal/history"
	"github.com/roach88/linearize/internal/linearize"
)

// BenchResult summarizes N repeated runs of the same fixture.
type BenchResult struct {
	Runs        int     `json:"runs"`
	Valid       bool    `json:"valid"`
	MeanMillis  float64 `json:"mean_millis"`
	MeanVisited float64 `json:"mean_visited"`
	MeanSkipped float64 `json:"mean_skipped"`
}

// NewBenchCommand creates the "bench" subcommand.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	var runs int
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:           "bench <history.yaml>",
		Short:         "Run check repeatedly and report timing/exploration statistics",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(rootOpts, args[0], runs, timeout, cmd)
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 10, "number of times to repeat the search")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "maximum time to spend on each run")

	return cmd
}

func runBench(opts *RootOptions, path string, runs int, timeout time.Duration, cmd *cobra.Command) error {
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

	if runs <= 0 {
		runs = 1
	}

	var totalMillis, totalVisited, totalSkipped float64
	valid := true

	for i := 0; i < runs; i++ {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		start := time.Now()
		report, err := linearize.Analyze(ctx, fixture.Model, fixture.History, analyzeOptions(opts)...)
		elapsed := time.Since(start)
		cancel()
		if err != nil {
			return outputCheckError(formatter, "E_ANALYZE", err.Error())
		}

		valid = valid && report.Valid
		totalMillis += float64(elapsed.Microseconds()) / 1000.0
		totalVisited += float64(report.Visited)
		totalSkipped += float64(report.Skipped)

		formatter.VerboseLog("run %d/%d: valid=%v visited=%d skipped=%d elapsed=%s",
			i+1, runs, report.Valid, report.Visited, report.Skipped, elapsed)
	}

	result := BenchResult{
		Runs:        runs,
		Valid:       valid,
		MeanMillis:  totalMillis / float64(runs),
		MeanVisited: totalVisited / float64(runs),
		MeanSkipped: totalSkipped / float64(runs),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%d runs, valid=%v\nmean: %.2fms, %.0f visited, %.0f skipped\n",
		result.Runs, result.Valid, result.MeanMillis, result.MeanVisited, result.MeanSkipped)
	return nil
}
