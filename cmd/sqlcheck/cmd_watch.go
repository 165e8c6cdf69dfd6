package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hlop3z/sqlcheck/internal/alerr"
	"github.com/hlop3z/sqlcheck/internal/checker"
	"github.com/hlop3z/sqlcheck/internal/cli"
)

// watchDebounce collapses the burst of events a single save produces.
const watchDebounce = 100 * time.Millisecond

// watchCmd re-grades a submission every time it is saved.
func watchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <test_name_or_path.sql>",
		Short: "Re-run the check whenever the submission changes",
		Args:  exactlyOneTest,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.setup(cmd)
			if err != nil {
				return err
			}

			name := checker.ResolveTestName(args[0])
			path := s.cfg.Layout().SubmissionPath(name)
			w := cmd.OutOrStdout()
			errCfg := opts.errorConfig()

			fmt.Fprintf(w, "  Watching: %s (Ctrl-C to stop)\n", cli.FilePath(path))

			return watchFile(cmd.Context(), path, s.logger, func() {
				fmt.Fprintln(w, cli.Dim(time.Now().Format(time.TimeOnly)+" "+name))

				res, err := s.checker.Check(cmd.Context(), name, checker.Options{Sort: s.cfg.Sort})
				if err != nil {
					// Keep watching; the next save may fix it.
					_ = cli.WriteError(errCfg, err)
					return
				}
				if err := printResult(w, res, opts); err != nil {
					s.logger.Warn("failed to print result", "err", err)
				}
			})
		},
	}
}

// watchFile calls run once, then again after every write to path, until ctx
// is done. The parent directory is watched because editors often save by
// renaming a temporary file over the original.
func watchFile(ctx context.Context, path string, logger *slog.Logger, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return alerr.Wrap(alerr.EInternalError, err, "file watcher failed")
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return alerr.Wrap(alerr.EInternalError, err, "failed to watch directory").WithPath(dir)
	}
	base := filepath.Base(path)

	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("submission changed", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "err", err)

		case <-fire:
			fire = nil
			run()
		}
	}
}
