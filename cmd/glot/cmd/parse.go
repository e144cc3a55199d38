package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/glottony/internal/render"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Print the syntax tree of a source",
	Long: `Parses a source file, or standard input, and prints its syntax tree.

Formats:
  tree   - indented tree with positions (default)
  sexpr  - compact structural notation
  json   - node dump as JSON
  yaml   - node dump as YAML

Examples:
  glot parse main.glot
  glot parse --format sexpr main.glot
  echo "1 + 2 * 3" | glot parse`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "Output format (tree, sexpr, json, yaml)")
}

func runParse(cmd *cobra.Command, args []string) error {
	name := parseFormat
	if name == "" {
		name = cfg.Output.Format
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}

	res, err := parseInput(cmd, inputPaths(args)[0])
	if err != nil {
		return err
	}
	return render.AST(cmd.OutOrStdout(), res.File, format, styles)
}
