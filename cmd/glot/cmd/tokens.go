package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/glottony/internal/render"
	"github.com/msto63/glottony/pkg/glottony/parser"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Print the token stream of a source",
	Long: `Runs the lexer over a source file, or standard input, and prints
one token per line with its position. Lexical errors are reported
after the listing.

Examples:
  glot tokens main.glot
  echo 'fun f(): string = "x"' | glot tokens`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	unit, err := loadUnit(cmd, inputPaths(args)[0])
	if err != nil {
		return err
	}

	mode, err := parser.ParseRecoveryMode(cfg.Parser.Mode)
	if err != nil {
		return err
	}

	tokens, errs := parser.NewLexer(unit.Text, mode).Tokenize()
	logger.Debug("source tokenized", "source", unit.Name, "tokens", len(tokens), "errors", len(errs))

	if err := render.Tokens(cmd.OutOrStdout(), tokens, styles); err != nil {
		return err
	}
	if len(errs) > 0 {
		if err := render.Diagnostics(cmd.ErrOrStderr(), unit, errs, styles); err != nil {
			return err
		}
		return ErrFailed
	}
	return nil
}
