package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the score of the saved attempt",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		s := e.session()
		report := s.Report()
		out := cmd.OutOrStdout()

		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Finished  bool   `json:"finished"`
				Phase     string `json:"phase"`
				AttemptID string `json:"attemptId"`
				Report    any    `json:"report"`
			}{s.Finished(), s.Phase().String(), s.AttemptID(), report})
		}

		fmt.Fprintf(out, "Attempt %s (%s)\n", s.AttemptID(), s.Phase())
		fmt.Fprintln(out, report.ScoreLine())
		fmt.Fprintln(out, report.PercentLine())
		fmt.Fprintln(out)
		for _, line := range report.PerQuestion {
			fmt.Fprintf(out, "%3d. %-7s  %s\n", line.Number, line.Result(), line.Prompt)
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().Bool("json", false, "Print the report as JSON")
}
