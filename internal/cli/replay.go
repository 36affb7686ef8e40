package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/linearize/internal/store"
)

// ReplayResult is the JSON-serializable rendering of a persisted run.
type ReplayResult struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	ModelName  string `json:"model_name"`
	Valid      bool   `json:"valid"`
	PrefixLen  int    `json:"prefix_len"`
	HistoryLen int    `json:"history_len"`
	Visited    int64  `json:"visited"`
	Skipped    int64  `json:"skipped"`
	ReportText string `json:"report_text"`
}

// NewReplayCommand creates the "replay" subcommand.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "replay <run-id>",
		Short:         "Re-render a persisted run's report without re-running the search",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, dbPath, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to read the run from")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *RootOptions, dbPath, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if dbPath == "" {
		return outputCheckError(formatter, "E_FLAGS", "--db is required")
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return outputCheckError(formatter, "E_DB", err.Error())
	}
	defer s.Close()

	run, _, _, err := s.ReadRun(cmd.Context(), runID)
	if err != nil {
		return outputCheckError(formatter, "E_NOTFOUND", fmt.Sprintf("run %q: %v", runID, err))
	}

	result := ReplayResult{
		ID:         run.ID,
		Source:     run.Source,
		ModelName:  run.ModelName,
		Valid:      run.Valid,
		PrefixLen:  run.PrefixLen,
		HistoryLen: run.HistoryLen,
		Visited:    run.Visited,
		Skipped:    run.Skipped,
		ReportText: run.ReportText,
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer, run.ReportText)
	}

	if !run.Valid {
		return NewExitError(ExitFailure, "history is not linearizable")
	}
	return nil
}
