package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/glottony/internal/render"
	"github.com/msto63/glottony/internal/source"
	"github.com/msto63/glottony/internal/watch"
	"github.com/msto63/glottony/pkg/core/cache"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Check sources again whenever they change",
	Long: `Checks the given files and directories once and then again each
time a source changes. Changes are collected until the files have been
quiet for the configured debounce interval.

Examples:
  glot watch
  glot watch src/ main.glot`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := source.Expand(args, cfg.Watch.Extensions)
	if err != nil {
		return err
	}

	w, err := watch.New(args, watch.Options{
		Debounce:   cfg.Watch.Debounce.Duration,
		Extensions: cfg.Watch.Extensions,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	results := cache.New[source.Result](cache.DefaultConfig())
	defer results.Close()

	out := cmd.OutOrStdout()
	if len(paths) > 0 {
		if err := recheck(ctx, cmd, paths, results); err != nil {
			w.Close()
			return err
		}
	}
	fmt.Fprintln(out, styles.Muted.Render("watching for changes, press Ctrl+C to stop"))

	return w.Run(ctx, func(ctx context.Context, changes []watch.Change) {
		var changed []string
		for _, c := range changes {
			if c.Removed {
				fmt.Fprintln(out, styles.Muted.Render(c.Path+" removed"))
				continue
			}
			changed = append(changed, c.Path)
		}
		if len(changed) == 0 {
			return
		}
		if err := recheck(ctx, cmd, changed, results); err != nil {
			logger.LogError("recheck failed", err)
		}
		hits, misses, _ := results.Stats()
		logger.Debug("parse cache", "hits", hits, "misses", misses, "size", results.Size())
	})
}

// recheck checks paths and prints a timestamped summary
func recheck(ctx context.Context, cmd *cobra.Command, paths []string, results *cache.Cache[source.Result]) error {
	sum, err := checkAndReport(ctx, cmd, paths, results)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, styles.Muted.Render(time.Now().Format("15:04:05"))+" ")
	return render.Summary(out, sum, styles)
}
