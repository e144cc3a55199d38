package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/glottony/internal/tui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse expressions interactively",
	Long: `Starts an interactive session. Every line entered is parsed and its
syntax tree and canonical form, or its diagnostics, are shown.

Keys:
  Enter    parse the input
  Up/Down  browse the input history
  Ctrl+F   toggle between error recovery and fail-fast
  Ctrl+L   clear the scrollback
  Esc      quit`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	// no parse logging while the UI owns the terminal
	options := cfg.ParserOptions(nil)
	logger.Debug("starting repl", "mode", options.Mode.String())
	return tui.Run(options, !cfg.Output.NoColor)
}
