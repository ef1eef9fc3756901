package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/exprfront/internal/tui/repl"
)

var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"shell"},
	Short:   "Start the interactive expression shell",
	Long: `Start an interactive shell. Every submitted line is parsed on its
own and shown with its statements and diagnostics.

Keys:
  Enter       parse the line
  Up/Down     recall previous lines
  PgUp/PgDn   scroll
  Ctrl+T      toggle tree dumps
  Ctrl+L      clear
  Esc/Ctrl+C  quit`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	return repl.Run(repl.Config{
		Prompt:     appConfig.REPL.Prompt,
		HistoryMax: appConfig.REPL.HistoryMax,
		Engine:     newEngine(),
	})
}
