package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/history"
	screenhistory "github.com/abhisek/quizz/internal/screens/history"
	"github.com/abhisek/quizz/internal/store"
)

var errNoAttemptLog = errors.New("no attempt log in ephemeral mode")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := historyQuery(cmd, time.Now())
		if err != nil {
			return err
		}

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if e.events == nil {
			return errNoAttemptLog
		}

		entries, err := history.Recent(cmd.Context(), e.events, e.bank, opts)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}
		stale := false
		for _, entry := range entries {
			fmt.Fprintln(out, screenhistory.Summary(entry))
			stale = stale || entry.Stale()
		}
		if stale {
			fmt.Fprintln(out, "\n* recorded against a bank of a different size")
		}
		return nil
	},
}

// historyQuery builds the attempt log filter from the command flags.
// Durations are measured back from now.
func historyQuery(cmd *cobra.Command, now time.Time) (store.QueryOpts, error) {
	f := cmd.Flags()
	limit, _ := f.GetInt("limit")
	action, _ := f.GetString("action")
	attempt, _ := f.GetString("attempt")
	since, _ := f.GetDuration("since")
	until, _ := f.GetDuration("until")

	switch action {
	case "", store.ActionSubmit, store.ActionRetake:
	default:
		return store.QueryOpts{}, fmt.Errorf("invalid --action %q: must be %s or %s", action, store.ActionSubmit, store.ActionRetake)
	}
	if since < 0 || until < 0 {
		return store.QueryOpts{}, errors.New("--since and --until must not be negative")
	}

	opts := store.QueryOpts{Limit: limit, Action: action, AttemptID: attempt}
	if since > 0 {
		opts.From = now.Add(-since)
	}
	if until > 0 {
		opts.To = now.Add(-until)
	}
	return opts, nil
}

func init() {
	f := historyCmd.Flags()
	f.Int("limit", history.DefaultLimit, "Maximum number of attempts to list")
	f.String("action", "", "Only list events of this kind (submit or retake)")
	f.String("attempt", "", "Only list events of this attempt ID")
	f.Duration("since", 0, "Only list events newer than this (e.g. 24h)")
	f.Duration("until", 0, "Only list events older than this (e.g. 1h)")
}
