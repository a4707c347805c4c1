package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizz",
	Short: "Multiple-choice quiz in the terminal",
	Long: `Quizz runs a multiple-choice quiz in the terminal. Progress is saved after
every answer, so closing the terminal and starting again picks up where you
left off.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/quizz/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides QUIZZ_DB env var)")
	pf.String("bank", "", "Question bank file, YAML or JSON (default: built-in bank)")
	pf.Bool("ephemeral", false, "Keep progress in memory only")
	pf.String("log-file", "", "Log file (default $XDG_STATE_HOME/quizz/quizz.log)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(retakeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(versionCmd)
}
