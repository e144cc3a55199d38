package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/glottony/internal/render"
	"github.com/msto63/glottony/internal/source"
	"github.com/msto63/glottony/pkg/core/cache"
	glerrors "github.com/msto63/glottony/pkg/core/errors"
)

var checkWorkers int

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report syntax errors in files and directories",
	Long: `Parses every source file concurrently and reports all syntax
errors. Directories are searched for files with the configured
extensions (default .glot). Exits with status 1 if any file fails.

Examples:
  glot check                  # current directory
  glot check src/ extra.glot
  glot check --workers 8 src/`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVar(&checkWorkers, "workers", 0, "Files parsed in parallel (default from config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := source.Expand(args, cfg.Watch.Extensions)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return glerrors.New("no source files found").
			WithCode(glerrors.CodeInvalidInput).
			WithOperation("glot.check")
	}

	sum, err := checkAndReport(ctx, cmd, paths, nil)
	if err != nil {
		return err
	}
	if err := render.Summary(cmd.OutOrStdout(), sum, styles); err != nil {
		return err
	}
	if sum.Failed > 0 {
		return ErrFailed
	}
	return nil
}

// checkAndReport checks paths and writes the diagnostics of every failed
// source in input order. results may be nil.
func checkAndReport(ctx context.Context, cmd *cobra.Command, paths []string, results *cache.Cache[source.Result]) (source.Summary, error) {
	workers := cfg.Parser.Workers
	if checkWorkers > 0 {
		workers = checkWorkers
	}

	timer := logger.StartTimer("check").WithField("files", len(paths))
	checked, err := source.CheckAll(ctx, paths, source.Options{
		Parser:  cfg.ParserOptions(logger),
		Workers: workers,
		MaxSize: cfg.Parser.MaxInputLength,
		Logger:  logger,
		Cache:   results,
	})
	timer.Stop()
	if err != nil {
		return source.Summary{}, err
	}

	for _, res := range checked {
		if err := render.Result(cmd.ErrOrStderr(), res, styles); err != nil {
			return source.Summary{}, err
		}
	}
	return source.Summarize(checked), nil
}
