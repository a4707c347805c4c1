package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizz/internal/bank"
	"github.com/abhisek/quizz/internal/config"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect question banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions of the configured bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath, cmd.Flags())
		if err != nil {
			return err
		}
		b, err := bank.Load(cfg.Bank)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%4s  %-50s  %7s  %s\n", "#", "Prompt", "Options", "Correct")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for i, q := range b.All() {
			prompt := q.Prompt
			if len(prompt) > 50 {
				prompt = prompt[:47] + "..."
			}
			fmt.Fprintf(out, "%4d  %-50s  %7d  %s\n", i+1, prompt, len(q.Options), q.CorrectText())
		}

		fmt.Fprintf(out, "\n%d questions\n", b.Count())
		return nil
	},
}

var bankCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a question bank file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bank.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d questions\n", args[0], b.Count())
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankCheckCmd)
}
