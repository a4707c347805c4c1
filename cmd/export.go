package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the saved answers as CSV",
	Long: `Write the saved answers as CSV, one row per question, whether or not the
attempt has been submitted. By default the file is named ` + export.Filename + `
and written to the configured export directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		toStdout, _ := cmd.Flags().GetBool("stdout")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		s := e.session()
		if toStdout {
			st := s.State()
			return export.Write(cmd.OutOrStdout(), e.bank.All(), st.Answers, e.cfg.LineEnding())
		}

		path, err := e.exportTo(s, output)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file or directory")
	exportCmd.Flags().Bool("stdout", false, "Write to standard output instead of a file")
}
