package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var retakeCmd = &cobra.Command{
	Use:   "retake",
	Short: "Discard the saved answers and start over",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		s := e.session()
		s.Retake()
		fmt.Fprintf(cmd.OutOrStdout(), "Started attempt %s with %d questions.\n", s.AttemptID(), s.Count())
		return nil
	},
}
