package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/glottony/internal/render"
	"github.com/msto63/glottony/internal/source"
	glerrors "github.com/msto63/glottony/pkg/core/errors"
	"github.com/msto63/glottony/pkg/glottony/ast"
)

var (
	fmtCheck bool
	fmtDiff  bool
	fmtWrite bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Print or check the canonical form of sources",
	Long: `Parses each source and prints its canonical form: single spaces
around operators, ": " before types and ", " between parameters.

Examples:
  glot fmt main.glot
  glot fmt --check *.glot     # list files that are not canonical
  glot fmt --diff main.glot   # show what would change
  glot fmt -w main.glot       # rewrite the file in place`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "List files whose formatting differs and fail")
	fmtCmd.Flags().BoolVar(&fmtDiff, "diff", false, "Show a diff instead of the formatted source")
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the formatted source back to the file")
}

func runFmt(cmd *cobra.Command, args []string) error {
	failed := false
	for _, path := range inputPaths(args) {
		if err := formatOne(cmd, path); err != nil {
			if !errors.Is(err, ErrFailed) {
				return err
			}
			failed = true
		}
	}
	if failed {
		return ErrFailed
	}
	return nil
}

func formatOne(cmd *cobra.Command, path string) error {
	res, err := parseInput(cmd, path)
	if err != nil {
		return err
	}

	canonical, err := ast.Format(res.File)
	if err != nil {
		return glerrors.Wrap(err, "cannot format "+res.Unit.Name).
			WithCode(glerrors.CodeNotRepresentable).
			WithOperation("glot.fmt")
	}
	formatted := canonical + "\n"
	out := cmd.OutOrStdout()

	switch {
	case fmtCheck:
		if res.Unit.Text != formatted {
			fmt.Fprintln(out, res.Unit.Name)
			return ErrFailed
		}
		return nil

	case fmtDiff:
		_, err := render.Diff(out, res.Unit.Name, res.Unit.Text, formatted, styles)
		return err

	case fmtWrite && path != source.Stdin:
		if res.Unit.Text == formatted {
			return nil
		}
		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			return glerrors.Wrap(err, "cannot write formatted source").
				WithCode(glerrors.CodeIOError).
				WithOperation("glot.fmt").
				WithDetail("path", path)
		}
		logger.Info("source formatted", "path", path)
		return nil
	}

	_, err = fmt.Fprint(out, formatted)
	return err
}
