package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/msto63/glottony/internal/render"
	"github.com/msto63/glottony/internal/source"
	"github.com/msto63/glottony/pkg/core/config"
	glerrors "github.com/msto63/glottony/pkg/core/errors"
	"github.com/msto63/glottony/pkg/core/logging"
	"github.com/msto63/glottony/pkg/glottony/parser"
)

// ErrFailed is returned when the sources had errors that were already
// reported to the user
var ErrFailed = errors.New("glot: sources have errors")

var (
	cfgFile   string
	verbose   bool
	failFast  bool
	maxErrors int
	noColor   bool
)

// Set up by the root command before every subcommand runs
var (
	cfg      *config.Config
	logger   *logging.Logger
	styles   render.Styles
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "glot",
	Short: "glottony - parser front end for the glottony language",
	Long: `glot parses glottony sources: a single function declaration
or a single arithmetic expression per file.

Commands:
  parse    - print the syntax tree of a source
  tokens   - print the token stream of a source
  fmt      - print or check the canonical form of sources
  check    - report syntax errors in files and directories
  watch    - check sources again whenever they change
  repl     - parse expressions interactively`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command line and reports errors that were not
// reported yet
func Execute() error {
	err := rootCmd.Execute()
	if closeLog != nil {
		closeLog()
		closeLog = nil
	}
	if err != nil && !errors.Is(err, ErrFailed) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps the result of Execute to a process exit code: 1 when
// sources have errors, 2 for usage, configuration or I/O failures
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrFailed):
		return 1
	default:
		return 2
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./glottony.toml or $GLOTTONY_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&failFast, "fail-fast", false, "Stop at the first syntax error")
	rootCmd.PersistentFlags().IntVar(&maxErrors, "max-errors", parser.DefaultMaxErrors, "Maximum number of errors per source")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// setup loads the configuration, applies flag overrides and creates the
// logger for this run
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fail-fast") {
		mode := parser.RecoverErrors
		if failFast {
			mode = parser.FailFast
		}
		cfg.Parser.Mode = mode.String()
	}
	if flags.Changed("max-errors") {
		cfg.Parser.MaxErrors = maxErrors
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = noColor
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := cfg.LoggerConfig("glot")
	lc.Output = cmd.ErrOrStderr()
	if cfg.General.LogFile != "" {
		f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return glerrors.Wrap(err, "cannot open log file").
				WithCode(glerrors.CodeIOError).
				WithOperation("glot.setup").
				WithDetail("path", cfg.General.LogFile)
		}
		lc.AdditionalOutputs = append(lc.AdditionalOutputs, f)
		closeLog = f.Close
	}

	logger = logging.NewLogger(lc).WithRequestID(uuid.NewString())
	styles = render.NewStyles(!cfg.Output.NoColor)

	logger.Debug("command started",
		"command", cmd.Name(),
		"mode", cfg.Parser.Mode,
		"max_errors", cfg.Parser.MaxErrors)
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "glot: %v\n", err)
}

// inputPaths defaults to standard input
func inputPaths(args []string) []string {
	if len(args) == 0 {
		return []string{source.Stdin}
	}
	return args
}

// loadUnit reads path, taking standard input from the command
func loadUnit(cmd *cobra.Command, path string) (*source.Unit, error) {
	if path == source.Stdin {
		return source.LoadReader("<stdin>", cmd.InOrStdin(), cfg.Parser.MaxInputLength)
	}
	return source.Load(path, cfg.Parser.MaxInputLength)
}

func newParser() *parser.Parser {
	return parser.New(cfg.ParserOptions(logger))
}

// parseInput loads and parses path; failures are reported and turned
// into ErrFailed
func parseInput(cmd *cobra.Command, path string) (source.Result, error) {
	unit, err := loadUnit(cmd, path)
	if err != nil {
		return source.Result{Path: path, Err: err}, err
	}

	res := source.ParseUnit(newParser(), unit)
	if !res.OK() {
		if err := render.Result(cmd.ErrOrStderr(), res, styles); err != nil {
			return res, err
		}
		return res, ErrFailed
	}
	return res, nil
}
